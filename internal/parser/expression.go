package parser

import (
	"strconv"
	"strings"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is precedence climbing over the operator table.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		prec, rightAssoc := binaryPrec(p.lx.Peek().Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return nil, false
		}
		sp := left.Span().Cover(right.Span())

		if opTok.Kind == token.Assign {
			target, isIdent := left.(*ast.Ident)
			if !isIdent {
				p.report(diag.SynBadAssignTarget, left.Span(), "only a variable can be assigned to")
				return nil, false
			}
			left = &ast.Assign{At: sp, Target: target, Value: right}
			continue
		}
		left = &ast.Binary{At: sp, Op: binaryOps[opTok.Kind], Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	op, isUnary := unaryOp(p.lx.Peek().Kind)
	if !isUnary {
		return p.parsePostfixExpr()
	}
	if !p.enter() {
		p.leave()
		return nil, false
	}
	defer p.leave()

	opTok := p.advance()
	x, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return &ast.Unary{At: opTok.Span.Cover(x.Span()), Op: op, X: x}, true
}

func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for p.at(token.LParen) {
		p.advance()
		var args []ast.Expr
		for !p.at(token.RParen) {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after call arguments")
		if !ok {
			return nil, false
		}
		expr = &ast.Call{At: expr.Span().Cover(closeTok.Span), Callee: expr, Args: args}
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := parseIntLiteral(tok.Text)
		if err != nil {
			p.report(diag.LexBadNumber, tok.Span, "integer literal out of range")
			return nil, false
		}
		return &ast.IntLit{At: tok.Span, Value: v}, true

	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			p.report(diag.LexBadNumber, tok.Span, "malformed float literal")
			return nil, false
		}
		return &ast.FloatLit{At: tok.Span, Value: v}, true

	case token.StringLit:
		p.advance()
		return &ast.StringLit{At: tok.Span, Value: unquote(tok.Text)}, true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{At: tok.Span, Value: tok.Kind == token.KwTrue}, true

	case token.Ident:
		p.advance()
		return &ast.Ident{At: tok.Span, Name: tok.Text}, true

	case token.LParen:
		if !p.enter() {
			p.leave()
			return nil, false
		}
		defer p.leave()
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
			return nil, false
		}
		return inner, true

	case token.KwIf:
		return p.parseIf()

	case token.LBrace:
		return p.parseBlock()

	case token.Invalid:
		// the lexer already reported it
		p.advance()
		return nil, false

	default:
		p.err(diag.SynExpectExpression, "expected expression, found '"+tok.Kind.String()+"'")
		return nil, false
	}
}

// parseIntLiteral accepts decimal and 0x/0b/0o literals with '_' separators.
// A leading zero does not select octal.
func parseIntLiteral(text string) (int64, error) {
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			return strconv.ParseInt(text, 0, 64)
		}
	}
	return strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 10, 64)
}

// unquote strips the quotes and decodes the escapes the lexer accepted.
func unquote(text string) string {
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	if !strings.Contains(text, `\`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			b.WriteByte(c)
			continue
		}
		i++
		switch text[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
