package vm

import (
	"grok/internal/ir"
)

// function is a loaded ir.Function with its labels resolved.
type function struct {
	*ir.Function
	labels map[string]int
}

// Frame is the state of one active call.
type Frame struct {
	fn    *function
	blk   int // index into fn.Blocks
	ip    int // next instruction in the current block
	vars  map[string]Value
	base  int // operand stack height when the frame was entered
	entry bool
}

func (fr *Frame) block() *ir.Block {
	return fr.fn.Blocks[fr.blk]
}

// FuncName returns the name of the function this frame executes.
func (fr *Frame) FuncName() string { return fr.fn.Name }

// BlockLabel returns the label of the current block.
func (fr *Frame) BlockLabel() string { return fr.block().Label }

// atEnd reports whether the current block has no instructions left.
func (fr *Frame) atEnd() bool {
	return fr.ip >= len(fr.block().Instrs)
}

func (fr *Frame) jump(target int) {
	fr.blk = target
	fr.ip = 0
}
