package ir_test

import (
	"errors"
	"testing"

	"grok/internal/diag"
	"grok/internal/ir"
)

func codesOf(err error) []diag.Code {
	var out []diag.Code
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		var irErr *ir.Error
		if errors.As(err, &irErr) {
			out = append(out, irErr.Code)
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}

func block(label string, instrs ...ir.Instruction) *ir.Block {
	return &ir.Block{Label: label, Instrs: instrs}
}

func TestValidate(t *testing.T) {
	callee := &ir.Function{
		Name:   "two",
		Params: []ir.Param{{Name: "a"}, {Name: "b"}},
		Blocks: []*ir.Block{block("entry", ir.Return(false))},
	}
	tests := []struct {
		name string
		fn   *ir.Function
		want []diag.Code
	}{
		{
			name: "ok",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.PushBool(true), ir.JumpIfFalse("end_1")),
				block("end_1", ir.PushInt(1), ir.PushInt(2), ir.Call("two", 2), ir.Return(false)),
			}},
		},
		{
			name: "empty",
			fn:   &ir.Function{Name: "f"},
			want: []diag.Code{diag.IREmptyFunction},
		},
		{
			name: "duplicate label",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.Jump("entry")),
				block("entry"),
			}},
			want: []diag.Code{diag.IRDuplicateLabel},
		},
		{
			name: "unknown target",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.Jump("nowhere")),
			}},
			want: []diag.Code{diag.IRUnknownTarget},
		},
		{
			name: "missing function and bad arity",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.Call("missing", 0), ir.Call("two", 1), ir.Return(false)),
			}},
			want: []diag.Code{diag.IRMissingFunction, diag.IRBadOperands},
		},
		{
			name: "bad operands",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.LoadVar(""), ir.Instruction{Op: ir.OpReturn, Int: 2}),
			}},
			want: []diag.Code{diag.IRBadOperands, diag.IRBadOperands},
		},
		{
			name: "nil block",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.Jump("end_1")),
				nil,
				block("end_1", ir.Return(false)),
			}},
			want: []diag.Code{diag.IRBadOperands},
		},
		{
			name: "unknown opcode",
			fn: &ir.Function{Name: "f", Blocks: []*ir.Block{
				block("entry", ir.Instruction{Op: ir.Opcode(200)}),
			}},
			want: []diag.Code{diag.IRUnknownOpcode},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codesOf(ir.Validate([]*ir.Function{callee, tt.fn}))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestOpcodeText(t *testing.T) {
	for op := ir.OpPushInt; op <= ir.OpJumpIfFalse; op++ {
		parsed, err := ir.ParseOpcode(op.String())
		if err != nil || parsed != op {
			t.Errorf("%s: parsed %v, %v", op, parsed, err)
		}
	}
	if _, err := ir.ParseOpcode("invalid"); err == nil {
		t.Error("invalid should not parse")
	}
}
