package ir

// Block is a labelled straight-line run of instructions. When the last
// instruction does not terminate, control falls through to the next block
// of the function.
type Block struct {
	Label  string        `json:"label" msgpack:"label"`
	Instrs []Instruction `json:"instrs" msgpack:"instrs"`
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	n := len(b.Instrs)
	return n > 0 && b.Instrs[n-1].Terminates()
}

// Param is a function parameter. Type is the inferred type when known.
type Param struct {
	Name string `json:"name" msgpack:"name"`
	Type string `json:"type,omitempty" msgpack:"type,omitempty"`
}

// Function is a lowered function. Blocks[0] is the entry block.
type Function struct {
	Name   string   `json:"name" msgpack:"name"`
	Params []Param  `json:"params" msgpack:"params"`
	Result string   `json:"result,omitempty" msgpack:"result,omitempty"`
	Blocks []*Block `json:"blocks" msgpack:"blocks"`
}

func (f *Function) Entry() *Block {
	if f == nil || len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// BlockIndex returns the position of the block labelled label.
func (f *Function) BlockIndex(label string) (int, bool) {
	for i, b := range f.Blocks {
		if b.Label == label {
			return i, true
		}
	}
	return 0, false
}

// InstrCount is the number of instructions across all blocks.
func (f *Function) InstrCount() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Instrs)
	}
	return n
}
