package vm

import (
	"math"
	"strings"

	"grok/internal/ir"
)

// binary applies an arithmetic or comparison opcode. Integer arithmetic
// wraps; floats follow IEEE 754.
func (vm *VM) binary(op ir.Opcode, l, r Value) (Value, *VMError) {
	switch op {
	case ir.OpEq, ir.OpNe:
		if l.Kind != r.Kind || l.Kind == VKNone {
			return Value{}, vm.typeMismatch(op.String(), l, r)
		}
		eq := equal(l, r)
		if op == ir.OpNe {
			eq = !eq
		}
		return BoolValue(eq), nil
	case ir.OpLt, ir.OpGt, ir.OpLe, ir.OpGe:
		if l.Kind == VKFloat && r.Kind == VKFloat {
			return BoolValue(floatOrder(op, l.Float, r.Float)), nil
		}
		c, ok := compare(l, r)
		if !ok {
			return Value{}, vm.typeMismatch(op.String(), l, r)
		}
		switch op {
		case ir.OpLt:
			return BoolValue(c < 0), nil
		case ir.OpGt:
			return BoolValue(c > 0), nil
		case ir.OpLe:
			return BoolValue(c <= 0), nil
		default:
			return BoolValue(c >= 0), nil
		}
	}

	switch {
	case l.Kind == VKInt && r.Kind == VKInt:
		return vm.intArith(op, l.Int, r.Int)
	case l.Kind == VKFloat && r.Kind == VKFloat:
		return floatArith(op, l.Float, r.Float)
	case l.Kind == VKString && r.Kind == VKString && op == ir.OpAdd:
		return StringValue(l.Str + r.Str), nil
	}
	return Value{}, vm.typeMismatch(op.String(), l, r)
}

func (vm *VM) intArith(op ir.Opcode, a, b int64) (Value, *VMError) {
	switch op {
	case ir.OpAdd:
		return IntValue(a + b), nil
	case ir.OpSub:
		return IntValue(a - b), nil
	case ir.OpMul:
		return IntValue(a * b), nil
	case ir.OpDiv:
		if b == 0 {
			return Value{}, vm.makeError(CodeDivisionByZero, "integer division by zero")
		}
		return IntValue(a / b), nil
	case ir.OpMod:
		if b == 0 {
			return Value{}, vm.makeError(CodeDivisionByZero, "integer modulo by zero")
		}
		return IntValue(a % b), nil
	}
	return Value{}, vm.makeError(CodeUnknownOpcode, "%s is not an arithmetic opcode", op)
}

func floatArith(op ir.Opcode, a, b float64) (Value, *VMError) {
	switch op {
	case ir.OpAdd:
		return FloatValue(a + b), nil
	case ir.OpSub:
		return FloatValue(a - b), nil
	case ir.OpMul:
		return FloatValue(a * b), nil
	case ir.OpDiv:
		return FloatValue(a / b), nil
	default:
		return FloatValue(math.Mod(a, b)), nil
	}
}

func equal(l, r Value) bool {
	switch l.Kind {
	case VKInt:
		return l.Int == r.Int
	case VKFloat:
		return l.Float == r.Float
	case VKString:
		return l.Str == r.Str
	default:
		return l.Bool == r.Bool
	}
}

// floatOrder compares directly so that NaN is unordered.
func floatOrder(op ir.Opcode, a, b float64) bool {
	switch op {
	case ir.OpLt:
		return a < b
	case ir.OpGt:
		return a > b
	case ir.OpLe:
		return a <= b
	default:
		return a >= b
	}
}

// compare orders two ints or two strings.
func compare(l, r Value) (int, bool) {
	if l.Kind != r.Kind {
		return 0, false
	}
	switch l.Kind {
	case VKInt:
		switch {
		case l.Int < r.Int:
			return -1, true
		case l.Int > r.Int:
			return 1, true
		}
		return 0, true
	case VKString:
		return strings.Compare(l.Str, r.Str), true
	}
	return 0, false
}

func (vm *VM) unary(op ir.Opcode, v Value) (Value, *VMError) {
	switch {
	case op == ir.OpNeg && v.Kind == VKInt:
		return IntValue(-v.Int), nil
	case op == ir.OpNeg && v.Kind == VKFloat:
		return FloatValue(-v.Float), nil
	case op == ir.OpNot && v.Kind == VKBool:
		return BoolValue(!v.Bool), nil
	}
	return Value{}, vm.makeError(CodeTypeMismatch, "%s: unsupported operand %s", op, v.Kind)
}
