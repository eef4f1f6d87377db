package types_test

import (
	"testing"

	"grok/internal/types"
)

func TestEnvLookupWalksOutward(t *testing.T) {
	root := types.NewEnv()
	root.Bind("x", types.I32)
	child := root.EnterScope()
	child.Bind("y", types.Bool)

	if got, ok := child.Lookup("x"); !ok || !types.Equal(got, types.I32) {
		t.Fatalf("child.Lookup(x) = %v, %v", got, ok)
	}
	if _, ok := root.Lookup("y"); ok {
		t.Fatal("binding in child leaked into parent")
	}
	if _, ok := root.Lookup("missing"); ok {
		t.Fatal("expected absence for unbound name")
	}
}

func TestEnvShadowing(t *testing.T) {
	root := types.NewEnv()
	root.Bind("x", types.I32)
	child := root.EnterScope()
	child.Bind("x", types.Str)

	if got, _ := child.Lookup("x"); !types.Equal(got, types.Str) {
		t.Fatalf("shadowed lookup = %v", got)
	}
	if got, _ := root.Lookup("x"); !types.Equal(got, types.I32) {
		t.Fatalf("outer binding changed to %v", got)
	}

	root.Bind("x", types.F64)
	if got, _ := root.LookupLocal("x"); !types.Equal(got, types.F64) {
		t.Fatalf("Bind must overwrite in the current frame, got %v", got)
	}
	if child.Parent() != root {
		t.Fatal("Parent() must return the enclosing frame")
	}
}
