package ir

import (
	"fmt"

	"grok/internal/diag"
	"grok/internal/source"
)

// Error is a lowering or validation failure.
type Error struct {
	Code  diag.Code
	Func  string
	Block string
	Index int
	Span  source.Span
	Msg   string
}

func (e *Error) Error() string {
	switch {
	case e.Block != "":
		return fmt.Sprintf("%s: fn %s, block %s #%d: %s", e.Code.ID(), e.Func, e.Block, e.Index, e.Msg)
	case e.Func != "":
		return fmt.Sprintf("%s: fn %s: %s", e.Code.ID(), e.Func, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
	}
}

// Diagnostic converts e for reporting alongside front-end diagnostics.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}
