package parser

import (
	"grok/internal/diag"
	"grok/internal/source"
	"grok/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code and returns ok=false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

// err reports at the next token. Always returns false for use in returns.
func (p *Parser) err(code diag.Code, msg string) bool {
	p.report(code, p.diagnosticSpan(), msg)
	return false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

// resyncUntil skips tokens until one of stop (or EOF) is next. The stop token is not consumed.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

// resyncStmt skips the rest of a broken statement inside a block.
func (p *Parser) resyncStmt() {
	if !p.atOr(token.RBrace, token.EOF, token.KwLet, token.KwWhile, token.KwReturn) {
		p.advance()
	}
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwLet, token.KwWhile, token.KwReturn)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// enter tracks nesting depth; on overflow it reports once and returns false.
// Every call must be paired with leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		if !p.tooDeep {
			p.tooDeep = true
			p.err(diag.SynNestingTooDeep, "expression nesting exceeds the configured limit")
		}
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }
