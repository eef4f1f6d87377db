package sema

import (
	"fmt"

	"grok/internal/source"
	"grok/internal/types"
)

// UnboundNameError is an identifier with no binding in any enclosing scope.
type UnboundNameError struct {
	Name string
	Span source.Span
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("cannot find value '%s' in this scope", e.Name)
}

// NotAFunctionError is a call whose callee has a non-function type.
type NotAFunctionError struct {
	Callee string
	Type   types.Type
	Span   source.Span
}

func (e *NotAFunctionError) Error() string {
	if e.Callee == "" {
		return fmt.Sprintf("expression of type %s is not a function", e.Type)
	}
	return fmt.Sprintf("'%s' has type %s and is not a function", e.Callee, e.Type)
}

// DepthLimitError stops the collector from descending past Limit nested expressions.
type DepthLimitError struct {
	Limit int
	Span  source.Span
}

func (e *DepthLimitError) Error() string {
	return fmt.Sprintf("expression nesting exceeds the limit of %d", e.Limit)
}

// UnknownTypeError is an annotation naming no primitive, struct or trait.
type UnknownTypeError struct {
	Name string
	Span source.Span
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type '%s'", e.Name)
}

// DuplicateDeclError is a second top-level item with an already used name.
type DuplicateDeclError struct {
	Name     string
	Span     source.Span
	Previous source.Span
}

func (e *DuplicateDeclError) Error() string {
	return fmt.Sprintf("'%s' is declared more than once", e.Name)
}
