package sema_test

import (
	"errors"
	"testing"

	"grok/internal/ast"
	"grok/internal/sema"
	"grok/internal/types"
)

func TestCollectLiterals(t *testing.T) {
	tests := []struct {
		expr ast.Expr
		want types.Type
	}{
		{&ast.IntLit{Value: 1}, types.I32},
		{&ast.FloatLit{Value: 1.5}, types.F64},
		{&ast.StringLit{Value: "s"}, types.Str},
		{&ast.BoolLit{Value: true}, types.Bool},
		{&ast.Binary{Op: ast.OpLt, Left: &ast.IntLit{}, Right: &ast.IntLit{}}, types.Bool},
		{&ast.If{Cond: &ast.BoolLit{}, Then: &ast.Block{Tail: &ast.IntLit{}}}, types.Unit},
		{&ast.Block{}, types.Unit},
	}
	for _, tt := range tests {
		c := sema.NewCollector(sema.CollectorOptions{})
		if got := c.Collect(tt.expr, types.NewEnv()); !types.Equal(got, tt.want) {
			t.Errorf("%T: got %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestCollectedConstraintsSolveWithoutFreeVars(t *testing.T) {
	env := types.NewEnv()
	env.Bind("x", types.Var("a"))
	env.Bind("y", types.Var("b"))
	// (x + 1) * y
	expr := &ast.Binary{
		Op:    ast.OpMul,
		Left:  &ast.Binary{Op: ast.OpAdd, Left: &ast.Ident{Name: "x"}, Right: &ast.IntLit{Value: 1}},
		Right: &ast.Ident{Name: "y"},
	}
	c := sema.NewCollector(sema.CollectorOptions{})
	got := c.Collect(expr, env)
	if n := len(c.Constraints()); n != 2 {
		t.Fatalf("got %d constraints, want 2", n)
	}
	subst, errs := types.Solve(c.Constraints())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, cs := range c.Constraints() {
		for _, side := range []types.Type{cs.Left, cs.Right} {
			if free := types.FreeVars(subst.Apply(side)); free.Size() != 0 {
				t.Fatalf("%s still has free variables %v", cs, free)
			}
		}
	}
	if solved := subst.Apply(got); !types.Equal(solved, types.I32) {
		t.Fatalf("result %v, want i32", solved)
	}
}

func TestCollectUnboundAndNotAFunction(t *testing.T) {
	env := types.NewEnv()
	env.Bind("n", types.I32)
	c := sema.NewCollector(sema.CollectorOptions{})
	c.Collect(&ast.Ident{Name: "missing"}, env)
	c.Collect(&ast.Call{Callee: &ast.Ident{Name: "n"}, Args: []ast.Expr{&ast.IntLit{}}}, env)

	errs := c.Errors()
	if len(errs) != 2 {
		t.Fatalf("got %v", errs)
	}
	var unbound *sema.UnboundNameError
	if !errors.As(errs[0], &unbound) || unbound.Name != "missing" {
		t.Errorf("errs[0] = %v", errs[0])
	}
	var notFn *sema.NotAFunctionError
	if !errors.As(errs[1], &notFn) || notFn.Callee != "n" {
		t.Errorf("errs[1] = %v", errs[1])
	}
}

func TestCollectLetStaysInBlock(t *testing.T) {
	env := types.NewEnv()
	inner := &ast.Block{Stmts: []ast.Stmt{&ast.Let{Name: "x", Value: &ast.IntLit{}}}}
	c := sema.NewCollector(sema.CollectorOptions{})
	c.Collect(&ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: inner}}}, env)
	if _, ok := env.Lookup("x"); ok {
		t.Fatal("x leaked into the enclosing environment")
	}
}
