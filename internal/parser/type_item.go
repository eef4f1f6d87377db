package parser

import (
	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/token"
)

// parseStruct parses "struct Name { field: type, ... }".
func (p *Parser) parseStruct() (*ast.StructDecl, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected struct name")
	if !ok {
		return nil, false
	}
	decl := &ast.StructDecl{Name: name.Text, NameSpan: name.Span}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !ok {
		return nil, false
	}
	for p.at(token.Ident) {
		fieldName := p.advance()
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name"); !ok {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		decl.Fields = append(decl.Fields, ast.Field{At: fieldName.Span.Cover(typ.Span()), Name: fieldName.Text, Type: typ})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct")
	if !ok {
		return nil, false
	}
	decl.At = kw.Span.Cover(end.Span)
	return decl, true
}

// parseTrait parses "trait Name { fn sig; ... }".
func (p *Parser) parseTrait() (*ast.TraitDecl, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected trait name")
	if !ok {
		return nil, false
	}
	decl := &ast.TraitDecl{Name: name.Text, NameSpan: name.Span}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after trait name"); !ok {
		return nil, false
	}
	for p.at(token.KwFn) {
		method, ok := p.parseFn(true)
		if !ok {
			return nil, false
		}
		decl.Methods = append(decl.Methods, method)
	}
	end, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close trait")
	if !ok {
		return nil, false
	}
	decl.At = kw.Span.Cover(end.Span)
	return decl, true
}
