package parser

import (
	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

// parseType parses "Name", "Name<T, ...>" or "fn(T, ...) -> R".
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	if !p.enter() {
		p.leave()
		return nil, false
	}
	defer p.leave()

	if p.at(token.KwFn) {
		return p.parseFuncType()
	}
	name, ok := p.expect(token.Ident, diag.SynExpectType, "expected type")
	if !ok {
		return nil, false
	}
	typ := &ast.NamedType{At: name.Span, Name: name.Text}
	if !p.at(token.Lt) {
		return typ, true
	}
	p.advance()
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		typ.Args = append(typ.Args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type arguments")
	if !ok {
		return nil, false
	}
	typ.At = typ.At.Cover(end.Span)
	return typ, true
}

func (p *Parser) parseFuncType() (ast.TypeExpr, bool) {
	fnTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' in function type"); !ok {
		return nil, false
	}
	typ := &ast.FuncType{At: fnTok.Span}
	for !p.at(token.RParen) {
		param, ok := p.parseType()
		if !ok {
			return nil, false
		}
		typ.Params = append(typ.Params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in function type"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' in function type"); !ok {
		return nil, false
	}
	result, ok := p.parseType()
	if !ok {
		return nil, false
	}
	typ.Result = result
	typ.At = typ.At.Cover(result.Span())
	return typ, true
}
