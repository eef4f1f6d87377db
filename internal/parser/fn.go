package parser

import (
	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

// parseFn parses "fn name(params) [-> type] body". When sigOnly is set the
// body may be replaced by ';' (trait method signatures).
func (p *Parser) parseFn(sigOnly bool) (*ast.FnDecl, bool) {
	fnTok := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil, false
	}
	fn := &ast.FnDecl{Name: name.Text, NameSpan: name.Span}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	if fn.Params, ok = p.parseParams(); !ok {
		return nil, false
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters")
	if !ok {
		return nil, false
	}
	fn.At = fnTok.Span.Cover(end.Span)

	if p.at(token.Arrow) {
		p.advance()
		if fn.Result, ok = p.parseType(); !ok {
			return nil, false
		}
		fn.At = fn.At.Cover(fn.Result.Span())
	}

	if sigOnly && p.at(token.Semicolon) {
		fn.At = fn.At.Cover(p.advance().Span)
		return fn, true
	}
	if fn.Body, ok = p.parseBlock(); !ok {
		return nil, false
	}
	fn.At = fn.At.Cover(fn.Body.Span())
	return fn, true
}

func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	for p.at(token.Ident) {
		name := p.advance()
		param := ast.Param{At: name.Span, Name: name.Text}
		if p.at(token.Colon) {
			p.advance()
			typ, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.Type = typ
			param.At = param.At.Cover(typ.Span())
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			return params, true
		}
		p.advance()
	}
	if !p.at(token.RParen) {
		return nil, p.err(diag.SynExpectIdentifier, "expected parameter name")
	}
	return params, true
}
