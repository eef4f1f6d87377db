package lexer

import (
	"grok/internal/diag"
	"grok/internal/token"
)

// scanString scans "..." keeping the quotes in Token.Text. Escapes are
// validated here and decoded by the parser.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			esc := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			switch lx.cursor.Bump() {
			case 'n', 't', 'r', '0', '"', '\\':
			default:
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(esc), "unknown escape sequence")
			}
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
