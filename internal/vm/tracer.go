package vm

import (
	"fmt"
	"io"

	"grok/internal/ir"
)

// Tracer prints every executed instruction.
type Tracer struct {
	w io.Writer
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// TraceInstr writes one line per instruction:
//
//	[depth=1] main entry:0 push-int 1
func (t *Tracer) TraceInstr(depth int, fr *Frame, ip int, in ir.Instruction) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s %s:%d %s\n", depth, fr.FuncName(), fr.BlockLabel(), ip, in)
}

// TraceReturn notes the value a frame hands back to its caller.
func (t *Tracer) TraceReturn(depth int, fr *Frame, v Value) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s returned %s\n", depth, fr.FuncName(), v.Repr())
}
