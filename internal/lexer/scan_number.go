package lexer

import (
	"grok/internal/diag"
	"grok/internal/token"
)

// Accepted forms: 0, 123, 1_000, 0b1010, 0o17, 0xff, 1.5, 1e-3, 1.0e+10.
// Malformed input is reported and produces an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			var digit func(byte) bool
			switch b1 {
			case 'b', 'B':
				digit = func(b byte) bool { return b == '0' || b == '1' }
			case 'o', 'O':
				digit = func(b byte) bool { return b >= '0' && b <= '7' }
			case 'x', 'X':
				digit = isHex
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
					n++
				}
				if n == 0 || isIdentContinueByte(lx.cursor.Peek()) {
					return lx.badNumber(start, "malformed integer literal")
				}
				return lx.emitNumber(start, kind)
			}
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if isIdentStartByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "unexpected character in number literal")
	}
	return lx.emitNumber(start, kind)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
