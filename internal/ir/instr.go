package ir

import (
	"strconv"
)

// Instruction is an opcode plus its operands. Which fields are meaningful
// depends on Op:
//
//	push-int       Int
//	push-float     Float
//	push-string    Text
//	push-bool      Bool
//	load-var       Name
//	store-var      Name
//	call           Name (callee), Int (argc)
//	return         Int (1 when a value is returned, else 0)
//	jump           Name (target label)
//	jump-if-false  Name (target label)
type Instruction struct {
	Op    Opcode  `json:"op" msgpack:"op"`
	Name  string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Int   int64   `json:"int,omitempty" msgpack:"int,omitempty"`
	Float float64 `json:"float,omitempty" msgpack:"float,omitempty"`
	Text  string  `json:"text,omitempty" msgpack:"text,omitempty"`
	Bool  bool    `json:"bool,omitempty" msgpack:"bool,omitempty"`
}

func PushInt(v int64) Instruction      { return Instruction{Op: OpPushInt, Int: v} }
func PushFloat(v float64) Instruction  { return Instruction{Op: OpPushFloat, Float: v} }
func PushString(v string) Instruction  { return Instruction{Op: OpPushString, Text: v} }
func PushBool(v bool) Instruction      { return Instruction{Op: OpPushBool, Bool: v} }
func LoadVar(name string) Instruction  { return Instruction{Op: OpLoadVar, Name: name} }
func StoreVar(name string) Instruction { return Instruction{Op: OpStoreVar, Name: name} }
func Jump(label string) Instruction    { return Instruction{Op: OpJump, Name: label} }
func Pop() Instruction                 { return Instruction{Op: OpPop} }

// Simple builds an operand-less instruction such as add or not.
func Simple(op Opcode) Instruction { return Instruction{Op: op} }

func JumpIfFalse(label string) Instruction {
	return Instruction{Op: OpJumpIfFalse, Name: label}
}

func Call(name string, argc int) Instruction {
	return Instruction{Op: OpCall, Name: name, Int: int64(argc)}
}

// Return leaves the function; withValue pops the result off the stack.
func Return(withValue bool) Instruction {
	in := Instruction{Op: OpReturn}
	if withValue {
		in.Int = 1
	}
	return in
}

// Terminates reports whether control never continues past the instruction.
func (in Instruction) Terminates() bool {
	return in.Op == OpJump || in.Op == OpReturn
}

func (in Instruction) String() string {
	op := in.Op.String()
	switch in.Op {
	case OpPushInt:
		return op + " " + strconv.FormatInt(in.Int, 10)
	case OpPushFloat:
		return op + " " + strconv.FormatFloat(in.Float, 'g', -1, 64)
	case OpPushString:
		return op + " " + strconv.Quote(in.Text)
	case OpPushBool:
		return op + " " + strconv.FormatBool(in.Bool)
	case OpLoadVar, OpStoreVar, OpJump, OpJumpIfFalse:
		return op + " " + in.Name
	case OpCall:
		return op + " " + in.Name + " " + strconv.FormatInt(in.Int, 10)
	case OpReturn:
		return op + " " + strconv.FormatInt(in.Int, 10)
	default:
		return op
	}
}
