package token

import (
	"grok/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is an operator or punctuation.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Semicolon
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
