package ast

import (
	"strings"

	"grok/internal/source"
)

// TypeExpr is the closed set of type annotations.
type TypeExpr interface {
	Node
	typeNode()
	String() string
}

type (
	// NamedType is a primitive, struct, trait or generic instance like Vec<T>.
	NamedType struct {
		At   source.Span
		Name string
		Args []TypeExpr
	}

	// FuncType is fn(A, B) -> R.
	FuncType struct {
		At     source.Span
		Params []TypeExpr
		Result TypeExpr
	}
)

func (t *NamedType) Span() source.Span { return t.At }
func (t *FuncType) Span() source.Span  { return t.At }

func (*NamedType) typeNode() {}
func (*FuncType) typeNode()  {}

func (t *NamedType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

func (t *FuncType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") -> " + t.Result.String()
}
