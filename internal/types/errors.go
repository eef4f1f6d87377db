package types

import (
	"fmt"

	"grok/internal/source"
)

// MismatchKind classifies a UnificationError.
type MismatchKind uint8

const (
	// MismatchType is a constructor, name or shape mismatch.
	MismatchType MismatchKind = iota
	// MismatchArity is a function or generic with a different argument count.
	MismatchArity
)

// UnificationError reports two types that cannot be made equal.
type UnificationError struct {
	Left  Type
	Right Type
	Kind  MismatchKind
	Span  source.Span
}

func (e *UnificationError) Error() string {
	if e.Kind == MismatchArity {
		return fmt.Sprintf("arity mismatch: %s has %d parameters, %s has %d",
			e.Left, arity(e.Left), e.Right, arity(e.Right))
	}
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Right, e.Left)
}

func arity(t Type) int {
	switch t := t.(type) {
	case *Function:
		return len(t.Params)
	case *Generic:
		return len(t.Args)
	default:
		return 0
	}
}

// InfiniteTypeError reports a variable that would have to contain itself.
type InfiniteTypeError struct {
	Var  *Variable
	Type Type
	Span source.Span
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.Type)
}
