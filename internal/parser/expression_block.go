package parser

import (
	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

// parseBlock parses "{ stmt* [tail] }".
func (p *Parser) parseBlock() (*ast.Block, bool) {
	if !p.enter() {
		p.leave()
		return nil, false
	}
	defer p.leave()

	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	block := &ast.Block{At: openTok.Span}

	for !p.atOr(token.RBrace, token.EOF) && !p.opts.Enough() {
		switch p.lx.Peek().Kind {
		case token.Semicolon:
			p.advance()
			continue
		case token.KwLet, token.KwWhile, token.KwReturn:
			stmt, ok := p.parseStmt()
			if !ok {
				p.resyncStmt()
				continue
			}
			block.Stmts = append(block.Stmts, stmt)
			continue
		}

		expr, ok := p.parseExpr()
		if !ok {
			p.resyncStmt()
			continue
		}
		switch {
		case p.at(token.Semicolon):
			semi := p.advance()
			block.Stmts = append(block.Stmts, &ast.ExprStmt{At: expr.Span().Cover(semi.Span), X: expr})
		case p.at(token.RBrace):
			block.Tail = expr
		case isBlockLike(expr):
			block.Stmts = append(block.Stmts, &ast.ExprStmt{At: expr.Span(), X: expr})
		default:
			p.err(diag.SynExpectSemicolon, "expected ';' after expression")
			block.Stmts = append(block.Stmts, &ast.ExprStmt{At: expr.Span(), X: expr})
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	block.At = openTok.Span.Cover(closeTok.Span)
	return block, true
}

// parseIf parses "if cond { ... } [else (if ... | { ... })]".
func (p *Parser) parseIf() (*ast.If, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	expr := &ast.If{At: ifTok.Span.Cover(then.Span()), Cond: cond, Then: then}
	if !p.at(token.KwElse) {
		return expr, true
	}
	p.advance()

	var elseExpr ast.Expr
	if p.at(token.KwIf) {
		nested, ok := p.parseIf()
		if !ok {
			return nil, false
		}
		elseExpr = nested
	} else {
		blk, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		elseExpr = blk
	}
	expr.Else = elseExpr
	expr.At = expr.At.Cover(elseExpr.Span())
	return expr, true
}

// isBlockLike reports whether e may stand as a statement without a trailing ';'.
func isBlockLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.If, *ast.Block:
		return true
	default:
		return false
	}
}
