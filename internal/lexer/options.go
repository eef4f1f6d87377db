package lexer

import (
	"grok/internal/diag"
	"grok/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped but lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
