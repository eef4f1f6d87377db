package ir

import "fmt"

// Opcode enumerates IR instruction kinds.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpPushInt
	OpPushFloat
	OpPushString
	OpPushBool
	OpLoadVar
	OpStoreVar
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpNeg
	OpNot
	OpPop
	OpCall
	OpReturn
	OpJump
	OpJumpIfFalse
)

var opcodeNames = [...]string{
	OpInvalid:     "invalid",
	OpPushInt:     "push-int",
	OpPushFloat:   "push-float",
	OpPushString:  "push-string",
	OpPushBool:    "push-bool",
	OpLoadVar:     "load-var",
	OpStoreVar:    "store-var",
	OpAdd:         "add",
	OpSub:         "sub",
	OpMul:         "mul",
	OpDiv:         "div",
	OpMod:         "mod",
	OpEq:          "eq",
	OpNe:          "ne",
	OpLt:          "lt",
	OpGt:          "gt",
	OpLe:          "le",
	OpGe:          "ge",
	OpNeg:         "neg",
	OpNot:         "not",
	OpPop:         "pop",
	OpCall:        "call",
	OpReturn:      "return",
	OpJump:        "jump",
	OpJumpIfFalse: "jump-if-false",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// Valid reports whether op is a known, non-invalid opcode.
func (op Opcode) Valid() bool {
	return op > OpInvalid && int(op) < len(opcodeNames)
}

// IsBinary reports whether op pops two operands and pushes one.
func (op Opcode) IsBinary() bool { return op >= OpAdd && op <= OpGe }

// IsJump reports whether op names a target block.
func (op Opcode) IsJump() bool { return op == OpJump || op == OpJumpIfFalse }

// ParseOpcode is the inverse of String.
func ParseOpcode(s string) (Opcode, error) {
	for i, name := range opcodeNames {
		if name == s && Opcode(i) != OpInvalid {
			return Opcode(i), nil
		}
	}
	return OpInvalid, fmt.Errorf("unknown opcode %q", s)
}

func (op Opcode) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

func (op *Opcode) UnmarshalText(text []byte) error {
	parsed, err := ParseOpcode(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
