package parser

import (
	"grok/internal/ast"
	"grok/internal/token"
)

// Binary operator precedence; higher binds tighter.
const (
	precAssignment     = 1 // =
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// binaryPrec returns the precedence of kind and whether it is right-associative.
// Non-operators return -1.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:    ast.OpAdd,
	token.Minus:   ast.OpSub,
	token.Star:    ast.OpMul,
	token.Slash:   ast.OpDiv,
	token.Percent: ast.OpMod,
	token.EqEq:    ast.OpEq,
	token.BangEq:  ast.OpNe,
	token.Lt:      ast.OpLt,
	token.Gt:      ast.OpGt,
	token.LtEq:    ast.OpLe,
	token.GtEq:    ast.OpGe,
	token.AndAnd:  ast.OpAnd,
	token.OrOr:    ast.OpOr,
}

func unaryOp(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.OpNeg, true
	case token.Bang:
		return ast.OpNot, true
	default:
		return 0, false
	}
}
