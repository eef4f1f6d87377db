package parser

import (
	"slices"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/lexer"
	"grok/internal/source"
	"grok/internal/token"
)

// DefaultMaxDepth bounds expression and block nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	MaxDepth      int
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
	depth    int
	tooDeep  bool
}

// ParseFile parses every item of the file behind lx.
// Syntax errors go to opts.Reporter; the returned tree holds every item that parsed.
func ParseFile(id source.FileID, lx *lexer.Lexer, opts Options) Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := Parser{
		lx:   lx,
		file: &ast.File{ID: id},
		opts: opts,
	}
	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: parse items until EOF.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		item, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.file.Items = append(p.file.Items, item)
	}
}

func (p *Parser) parseItem() (ast.Item, bool) {
	switch p.lx.Peek().Kind {
	case token.KwFn:
		fn, ok := p.parseFn(false)
		return fn, ok
	case token.KwStruct:
		return p.parseStruct()
	case token.KwTrait:
		return p.parseTrait()
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected 'fn', 'struct' or 'trait'")
		return nil, false
	}
}

// resyncTop skips to the next item keyword.
func (p *Parser) resyncTop() {
	if !p.atOr(token.EOF, token.KwFn, token.KwStruct, token.KwTrait) {
		p.advance()
	}
	p.resyncUntil(token.KwFn, token.KwStruct, token.KwTrait)
}
