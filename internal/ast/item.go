package ast

import (
	"grok/internal/source"
)

// File is a parsed compilation unit.
type File struct {
	ID    source.FileID
	Items []Item
}

// Item is the closed set of top-level declarations.
type Item interface {
	Node
	itemNode()
}

type (
	FnDecl struct {
		At       source.Span
		Name     string
		NameSpan source.Span
		Params   []Param
		Result   TypeExpr // nil when not annotated
		Body     *Block   // nil for trait method signatures
	}

	Param struct {
		At   source.Span
		Name string
		Type TypeExpr // nil when not annotated
	}

	StructDecl struct {
		At       source.Span
		Name     string
		NameSpan source.Span
		Fields   []Field
	}

	Field struct {
		At   source.Span
		Name string
		Type TypeExpr
	}

	TraitDecl struct {
		At       source.Span
		Name     string
		NameSpan source.Span
		Methods  []*FnDecl
	}
)

func (d *FnDecl) Span() source.Span     { return d.At }
func (d *StructDecl) Span() source.Span { return d.At }
func (d *TraitDecl) Span() source.Span  { return d.At }

func (*FnDecl) itemNode()     {}
func (*StructDecl) itemNode() {}
func (*TraitDecl) itemNode()  {}

// Funcs returns the function declarations of f in source order.
func (f *File) Funcs() []*FnDecl {
	out := make([]*FnDecl, 0, len(f.Items))
	for _, it := range f.Items {
		if fn, ok := it.(*FnDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}
