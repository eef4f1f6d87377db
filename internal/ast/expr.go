package ast

import (
	"grok/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Expr is the closed set of expression nodes.
type Expr interface {
	Node
	exprNode()
}

type (
	IntLit struct {
		At    source.Span
		Value int64
	}

	FloatLit struct {
		At    source.Span
		Value float64
	}

	StringLit struct {
		At    source.Span
		Value string
	}

	BoolLit struct {
		At    source.Span
		Value bool
	}

	Ident struct {
		At   source.Span
		Name string
	}

	Unary struct {
		At source.Span
		Op UnaryOp
		X  Expr
	}

	Binary struct {
		At    source.Span
		Op    BinaryOp
		Left  Expr
		Right Expr
	}

	Call struct {
		At     source.Span
		Callee Expr
		Args   []Expr
	}

	// If is a conditional expression. Else is nil, *Block or *If.
	If struct {
		At   source.Span
		Cond Expr
		Then *Block
		Else Expr
	}

	// Block is a braced statement list. Tail is the trailing expression
	// without a semicolon, or nil.
	Block struct {
		At    source.Span
		Stmts []Stmt
		Tail  Expr
	}

	Assign struct {
		At     source.Span
		Target *Ident
		Value  Expr
	}
)

func (e *IntLit) Span() source.Span    { return e.At }
func (e *FloatLit) Span() source.Span  { return e.At }
func (e *StringLit) Span() source.Span { return e.At }
func (e *BoolLit) Span() source.Span   { return e.At }
func (e *Ident) Span() source.Span     { return e.At }
func (e *Unary) Span() source.Span     { return e.At }
func (e *Binary) Span() source.Span    { return e.At }
func (e *Call) Span() source.Span      { return e.At }
func (e *If) Span() source.Span        { return e.At }
func (e *Block) Span() source.Span     { return e.At }
func (e *Assign) Span() source.Span    { return e.At }

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*If) exprNode()        {}
func (*Block) exprNode()     {}
func (*Assign) exprNode()    {}
