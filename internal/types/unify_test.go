package types_test

import (
	"errors"
	"testing"

	"grok/internal/types"
)

func TestUnifyIdempotent(t *testing.T) {
	a, b, c := types.Var("a"), types.Var("b"), types.Var("c")
	s, err := types.Unify([]types.Constraint{
		{Left: a, Right: b},
		{Left: b, Right: types.Gen("Vec", c)},
		{Left: c, Right: types.I32},
	})
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	inputs := []types.Type{a, b, c, types.Fn(a, b, c), types.Gen("Map", a, types.Var("free"))}
	for _, in := range inputs {
		once := s.Apply(in)
		twice := s.Apply(once)
		if !types.Equal(once, twice) {
			t.Fatalf("Apply not idempotent for %v: %v then %v", in, once, twice)
		}
	}
	if got := s.Apply(a).String(); got != "Vec<i32>" {
		t.Fatalf("a resolved to %s, want Vec<i32>", got)
	}
}

func TestLiteralConstraintsLeaveNoFreeVars(t *testing.T) {
	x, y, z := types.Var("x"), types.Var("y"), types.Var("z")
	cs := []types.Constraint{
		{Left: x, Right: types.I32},
		{Left: y, Right: x},
		{Left: types.Bool, Right: z},
		{Left: types.Fn(z, y), Right: types.Fn(types.Bool, types.I32)},
	}
	s, err := types.Unify(cs)
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	for _, c := range cs {
		for _, side := range []types.Type{c.Left, c.Right} {
			if fv := types.FreeVars(s.Apply(side)); !fv.Empty() {
				t.Fatalf("%v still has free vars %v", side, fv.Slice())
			}
		}
	}
}

func TestOccursCheck(t *testing.T) {
	tv := types.Var("T")
	_, err := types.Unify([]types.Constraint{{Left: tv, Right: types.Gen("Vec", tv)}})
	var inf *types.InfiniteTypeError
	if !errors.As(err, &inf) {
		t.Fatalf("expected InfiniteTypeError, got %v", err)
	}
	if inf.Var.Name != "T" {
		t.Fatalf("unexpected variable %v", inf.Var)
	}
}

func TestOccursCheckThroughChain(t *testing.T) {
	a, b := types.Var("a"), types.Var("b")
	_, errs := types.Solve([]types.Constraint{
		{Left: a, Right: b},
		{Left: b, Right: types.Fn(types.I32, a)},
	})
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var inf *types.InfiniteTypeError
	if !errors.As(errs[0], &inf) {
		t.Fatalf("expected InfiniteTypeError, got %v", errs[0])
	}
}

func TestUnifyMismatches(t *testing.T) {
	tests := []struct {
		name  string
		left  types.Type
		right types.Type
		kind  types.MismatchKind
	}{
		{"primitive names", types.I32, types.Bool, types.MismatchType},
		{"function vs primitive", types.Fn(types.I32), types.I32, types.MismatchType},
		{"generic constructor", types.Gen("Vec", types.I32), types.Gen("Set", types.I32), types.MismatchType},
		{"generic arity", types.Gen("Map", types.I32), types.Gen("Map", types.I32, types.I32), types.MismatchArity},
		{"function arity", types.Fn(types.I32, types.I32), types.Fn(types.I32, types.I32, types.I32), types.MismatchArity},
		{"struct names", &types.Struct{Name: "A"}, &types.Struct{Name: "B"}, types.MismatchType},
		{"trait vs struct", &types.Trait{Name: "A"}, &types.Struct{Name: "A"}, types.MismatchType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.Unify([]types.Constraint{{Left: tt.left, Right: tt.right}})
			var ue *types.UnificationError
			if !errors.As(err, &ue) {
				t.Fatalf("expected UnificationError, got %v", err)
			}
			if ue.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d", ue.Kind, tt.kind)
			}
		})
	}
}

func TestNominalTypesUnifyByName(t *testing.T) {
	a := &types.Struct{Name: "Point", Fields: []types.Field{{Name: "x", Type: types.I32}}}
	b := &types.Struct{Name: "Point"}
	if _, err := types.Unify([]types.Constraint{{Left: a, Right: b}}); err != nil {
		t.Fatalf("structs with equal names must unify: %v", err)
	}
}

func TestGenericArgumentsFoldIntoSubstitution(t *testing.T) {
	a := types.Var("a")
	s, err := types.Unify([]types.Constraint{
		{Left: types.Gen("Vec", a), Right: types.Gen("Vec", types.F64)},
		{Left: a, Right: types.I32},
	})
	if err == nil {
		t.Fatal("binding from the generic argument was discarded")
	}
	if got := s.Apply(a); !types.Equal(got, types.F64) {
		t.Fatalf("a = %v, want f64", got)
	}
}

func TestUnifyContinuesPastFailures(t *testing.T) {
	x := types.Var("x")
	s, errs := types.Solve([]types.Constraint{
		{Left: types.I32, Right: types.Bool},
		{Left: x, Right: types.Str},
		{Left: types.Fn(types.I32, types.Bool), Right: types.Fn(types.Str, types.I32)},
	})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors (one + two from the function pair), got %d: %v", len(errs), errs)
	}
	if got := s.Apply(x); !types.Equal(got, types.Str) {
		t.Fatalf("x = %v, want str", got)
	}
}

func TestTypeString(t *testing.T) {
	fn := types.Fn(types.Gen("Vec", types.Var("T")), types.I32, types.Fn(types.Bool, types.Str))
	if got := fn.String(); got != "fn(i32, fn(str) -> bool) -> Vec<T>" {
		t.Fatalf("String() = %s", got)
	}
	s := types.Substitution{"b": types.I32, "a": types.Var("b")}
	if got := s.String(); got != "{a := i32, b := i32}" {
		t.Fatalf("Substitution.String() = %s", got)
	}
}
