package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/lexer"
	"grok/internal/parser"
	"grok/internal/source"
)

func parseSource(t *testing.T, src string, opts parser.Options) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.grok", []byte(src))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	opts.Reporter = rep
	res := parser.ParseFile(id, lx, opts)
	return res.File, bag
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag := parseSource(t, src, parser.Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return file
}

// mustParseExpr parses src as the tail expression of a function body.
func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	file := mustParse(t, "fn main() { "+src+" }")
	body := file.Funcs()[0].Body
	if body.Tail == nil {
		t.Fatalf("%q: no tail expression", src)
	}
	return body.Tail
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// render prints an expression fully parenthesized.
func render(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return fmt.Sprint(e.Value)
	case *ast.FloatLit:
		return fmt.Sprint(e.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", e.Value)
	case *ast.BoolLit:
		return fmt.Sprint(e.Value)
	case *ast.Ident:
		return e.Name
	case *ast.Unary:
		return "(" + e.Op.String() + render(e.X) + ")"
	case *ast.Binary:
		return "(" + render(e.Left) + " " + e.Op.String() + " " + render(e.Right) + ")"
	case *ast.Assign:
		return "(" + e.Target.Name + " = " + render(e.Value) + ")"
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = render(a)
		}
		return render(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.If:
		s := "if " + render(e.Cond) + " " + render(e.Then)
		if e.Else != nil {
			s += " else " + render(e.Else)
		}
		return s
	case *ast.Block:
		parts := make([]string, 0, len(e.Stmts)+1)
		for range e.Stmts {
			parts = append(parts, "stmt;")
		}
		if e.Tail != nil {
			parts = append(parts, render(e.Tail))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
