package ast

import (
	"grok/internal/source"
)

// Stmt is the closed set of statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

type (
	// Let binds Name in the enclosing block. Type is nil when not annotated.
	Let struct {
		At       source.Span
		Name     string
		NameSpan source.Span
		Mut      bool
		Type     TypeExpr
		Value    Expr
	}

	// ExprStmt evaluates X for its effects and discards the value.
	ExprStmt struct {
		At source.Span
		X  Expr
	}

	While struct {
		At   source.Span
		Cond Expr
		Body *Block
	}

	// Return leaves the enclosing function. Value is nil for a bare return.
	Return struct {
		At    source.Span
		Value Expr
	}
)

func (s *Let) Span() source.Span      { return s.At }
func (s *ExprStmt) Span() source.Span { return s.At }
func (s *While) Span() source.Span    { return s.At }
func (s *Return) Span() source.Span   { return s.At }

func (*Let) stmtNode()      {}
func (*ExprStmt) stmtNode() {}
func (*While) stmtNode()    {}
func (*Return) stmtNode()   {}
