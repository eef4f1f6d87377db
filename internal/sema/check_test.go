package sema_test

import (
	"fmt"
	"strings"
	"testing"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/lexer"
	"grok/internal/parser"
	"grok/internal/sema"
	"grok/internal/source"
	"grok/internal/types"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.grok", []byte(src))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(id, lx, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("parse %q: %s", src, codes(bag.Items()))
	}
	return res.File
}

func check(t *testing.T, src string, opts sema.Options) (*sema.Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	opts.Reporter = diag.BagReporter{Bag: bag}
	return sema.Check(parse(t, src), opts), bag
}

func codes(diags []diag.Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = fmt.Sprintf("%s %s", d.Code.ID(), d.Message)
	}
	return strings.Join(parts, "; ")
}

func TestCheckAcceptsWellTypedPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arith", "fn main() -> i32 { 1 + 2 * 3 }"},
		{"if-else", "fn main() -> i32 { if true { 1 } else { 2 } }"},
		{"call", "fn add(a: i32, b: i32) -> i32 { a + b } fn main() -> i32 { add(2, 3) }"},
		{"forward-and-recursive", `
fn main() -> i32 { fib(10) }
fn fib(n: i32) -> i32 { if n < 2 { n } else { fib(n - 1) + fib(n - 2) } }`},
		{"early-return", "fn f(x: i32) -> i32 { if x < 0 { return 0; } x }"},
		{"return-only", "fn f() -> i32 { return 7; }"},
		{"bare-return", "fn f() { return; }"},
		{"shadow-in-block", "fn main() -> bool { let x = 1; { let x = true; x; } x == 1 }"},
		{"while", "fn main() { let mut i = 0; while i < 10 { i = i + 1; } }"},
		{"let-annotation", "fn main() { let s: str = \"hi\"; }"},
		{"type-param", "fn id(x: T) -> T { x } fn main() -> i32 { id(1) }"},
		{"generic", "fn f(v: Vec<i32>) -> Vec<i32> { v }"},
		{"struct", "struct Point { x: i32, y: i32 } fn f(p: Point) -> Point { p }"},
		{"fn-param", "fn apply(f: fn(i32) -> i32, x: i32) -> i32 { f(x) }"},
		{"logical-permissive", "fn main() -> bool { 1 && true }"},
		{"unary", "fn main() -> bool { let x = -1; !(x < 0) }"},
		{"trait", "trait Show { fn show(x: i32) -> str; fn id(x); }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag := check(t, tt.src, sema.Options{})
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", codes(bag.Items()))
			}
			if res.HasErrors() {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
		})
	}
}

func TestCheckReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts sema.Options
		want diag.Code
	}{
		{"mismatch", "fn main() { 1 + true; }", sema.Options{}, diag.TypMismatch},
		{"unbound", "fn main() { x; }", sema.Options{}, diag.TypUnboundName},
		{"not-a-function", "fn main() { let x = 1; x(2); }", sema.Options{}, diag.TypNotAFunction},
		{"arity", "fn add(a: i32, b: i32) -> i32 { a + b } fn main() { add(1); }", sema.Options{}, diag.TypArity},
		{"block-scope-does-not-leak", "fn main() { { let x = 1; } x; }", sema.Options{}, diag.TypUnboundName},
		{"if-cond", "fn main() { if 1 { 2 } else { 3 }; }", sema.Options{}, diag.TypMismatch},
		{"if-branches", "fn main() { if true { 1 } else { \"s\" }; }", sema.Options{}, diag.TypMismatch},
		{"annotated-result", "fn main() -> bool { 1 }", sema.Options{}, diag.TypMismatch},
		{"bare-return-in-value-fn", "fn f() -> i32 { return; }", sema.Options{}, diag.TypMismatch},
		{"let-annotation", "fn main() { let x: bool = 1; }", sema.Options{}, diag.TypMismatch},
		{"assign-type", "fn main() { let mut x = 1; x = true; }", sema.Options{}, diag.TypMismatch},
		{"assign-unbound", "fn main() { y = 1; }", sema.Options{}, diag.TypUnboundName},
		{"while-cond", "fn main() { while 1 { } }", sema.Options{}, diag.TypMismatch},
		{"generic-arg", "fn g(v: Vec<i32>) -> Vec<bool> { v }", sema.Options{}, diag.TypMismatch},
		{"self-application", "fn f(x) { x(x) }", sema.Options{}, diag.TypInfinite},
		{"unknown-type", "fn f(x: foo) { }", sema.Options{}, diag.TypUnknownType},
		{"duplicate", "fn a() { } fn a() { }", sema.Options{}, diag.TypDuplicateDecl},
		{"logical-strict", "fn main() -> bool { 1 && true }", sema.Options{StrictLogical: true}, diag.TypMismatch},
		{"depth", "fn main() -> i32 { 1 + (2 + (3 + 4)) }", sema.Options{MaxDepth: 3}, diag.TypDepthLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag := check(t, tt.src, tt.opts)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.want {
					found = true
				}
				if d.Severity != diag.SevError {
					t.Errorf("%s: severity %v, want error", d.Code.ID(), d.Severity)
				}
			}
			if !found {
				t.Fatalf("want %s, got %s", tt.want.ID(), codes(bag.Items()))
			}
			if len(res.Diagnostics) != bag.Len() {
				t.Fatalf("result has %d diagnostics, reporter got %d", len(res.Diagnostics), bag.Len())
			}
		})
	}
}

func TestCheckKeepsGoingAfterErrors(t *testing.T) {
	_, bag := check(t, `
fn main() {
    1 + true;
    missing;
    "a" + 1;
}`, sema.Options{})
	var mismatches, unbound int
	for _, d := range bag.Items() {
		switch d.Code {
		case diag.TypMismatch:
			mismatches++
		case diag.TypUnboundName:
			unbound++
		}
	}
	if mismatches != 2 || unbound != 1 {
		t.Fatalf("got %s", codes(bag.Items()))
	}
}

func TestDepthLimitReportedOnce(t *testing.T) {
	_, bag := check(t, "fn main() -> i32 { (1 + (2 + (3 + 4))) + (1 + (2 + (3 + 4))) }", sema.Options{MaxDepth: 3})
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.TypDepthLimit {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("depth limit reported %d times: %s", n, codes(bag.Items()))
	}
}

func TestInferredSignatures(t *testing.T) {
	res, bag := check(t, `
fn add(a, b) { a + b }
fn main() -> i32 { add(2, 3) }
fn flag(x) { if x { 1.5 } else { 2.5 } }`, sema.Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", codes(bag.Items()))
	}
	tests := []struct {
		fn   string
		want string
	}{
		{"add", "fn(i32, i32) -> i32"},
		{"main", "fn() -> i32"},
		{"flag", "fn(bool) -> f64"},
	}
	for _, tt := range tests {
		got, ok := res.FuncType(tt.fn)
		if !ok {
			t.Fatalf("%s: no signature", tt.fn)
		}
		if got.String() != tt.want {
			t.Errorf("%s: got %s, want %s", tt.fn, got, tt.want)
		}
	}
}

func TestTypeOfAppliesSubstitution(t *testing.T) {
	file := parse(t, "fn f(a) { let y = a + 1; y }")
	res := sema.Check(file, sema.Options{})
	let := file.Funcs()[0].Body.Stmts[0].(*ast.Let)
	if got := res.TypeOf(let.Value); !types.Equal(got, types.I32) {
		t.Fatalf("TypeOf(a + 1) = %v, want i32", got)
	}
	if got := res.TypeOf(&ast.IntLit{}); got != nil {
		t.Fatalf("unvisited expression has type %v", got)
	}
}

func TestStructsAndTraitsRegistered(t *testing.T) {
	res, _ := check(t, `
struct Pair { a: Point, b: Point }
struct Point { x: i32, y: f64 }
trait Show { fn show(x: i32) -> str; fn loose(x); }`, sema.Options{})

	pair, ok := res.Structs["Pair"]
	if !ok || len(pair.Fields) != 2 {
		t.Fatalf("Pair = %+v", pair)
	}
	if pair.Fields[0].Type != res.Structs["Point"] {
		t.Fatalf("Pair.a = %v, want the Point declaration", pair.Fields[0].Type)
	}
	show := res.Traits["Show"]
	if show == nil || len(show.Methods) != 2 {
		t.Fatalf("Show = %+v", show)
	}
	if show.Methods[0].Sig == nil || show.Methods[0].Sig.String() != "fn(i32) -> str" {
		t.Errorf("show sig = %v", show.Methods[0].Sig)
	}
	if show.Methods[1].Sig != nil {
		t.Errorf("loose sig = %v, want none", show.Methods[1].Sig)
	}
}

func TestDuplicateDeclNotesPrevious(t *testing.T) {
	_, bag := check(t, "fn a() { }\nfn a() { }", sema.Options{})
	items := bag.Items()
	if len(items) != 1 || len(items[0].Notes) != 1 {
		t.Fatalf("got %+v", items)
	}
	if items[0].Notes[0].Span.Start >= items[0].Primary.Start {
		t.Fatalf("note should point at the first declaration")
	}
}
