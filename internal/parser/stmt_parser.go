package parser

import (
	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	default:
		return nil, p.err(diag.SynUnexpectedToken, "expected statement")
	}
}

// parseLet parses "let [mut] name [: type] = expr ;".
func (p *Parser) parseLet() (*ast.Let, bool) {
	letTok := p.advance()
	stmt := &ast.Let{}
	if p.at(token.KwMut) {
		p.advance()
		stmt.Mut = true
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'let'")
	if !ok {
		return nil, false
	}
	stmt.Name, stmt.NameSpan = name.Text, name.Span

	if p.at(token.Colon) {
		p.advance()
		if stmt.Type, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let statement"); !ok {
		return nil, false
	}
	if stmt.Value, ok = p.parseExpr(); !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement")
	if !ok {
		return nil, false
	}
	stmt.At = letTok.Span.Cover(semi.Span)
	return stmt, true
}

func (p *Parser) parseWhile() (*ast.While, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.While{At: whileTok.Span.Cover(body.Span()), Cond: cond, Body: body}, true
}

// parseReturn parses "return [expr] ;". The ';' may be omitted before '}'.
func (p *Parser) parseReturn() (*ast.Return, bool) {
	retTok := p.advance()
	stmt := &ast.Return{At: retTok.Span}
	if !p.atOr(token.Semicolon, token.RBrace) {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = value
		stmt.At = stmt.At.Cover(value.Span())
	}
	if p.at(token.Semicolon) {
		stmt.At = stmt.At.Cover(p.advance().Span)
	}
	return stmt, true
}
