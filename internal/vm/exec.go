package vm

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"grok/internal/ir"
)

// ctxCheckInterval is how many instructions run between context checks.
const ctxCheckInterval = 1024

// run executes until the entry frame of the current Call returns.
func (vm *VM) run(ctx context.Context) (Value, error) {
	for {
		fr := vm.frames[len(vm.frames)-1]
		if fr.atEnd() {
			if fr.blk+1 < len(fr.fn.Blocks) {
				fr.jump(fr.blk + 1)
				continue
			}
			if v, done := vm.leave(fr, Value{}); done {
				return v, nil
			}
			continue
		}

		ip := fr.ip
		in := fr.block().Instrs[ip]
		fr.ip++
		vm.steps++
		if vm.steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Value{}, fmt.Errorf("vm: %s: %w", fr.fn.Name, err)
			}
		}
		vm.opts.Tracer.TraceInstr(len(vm.frames), fr, ip, in)

		switch in.Op {
		case ir.OpReturn:
			var v Value
			if in.Int != 0 {
				var err *VMError
				if v, err = vm.pop(fr); err != nil {
					return Value{}, err
				}
			}
			if res, done := vm.leave(fr, v); done {
				return res, nil
			}
		case ir.OpCall:
			if err := vm.call(fr, in); err != nil {
				return Value{}, err
			}
		default:
			if err := vm.step(fr, in); err != nil {
				return Value{}, err
			}
		}
	}
}

// leave pops fr and hands v to the caller. done is true when fr was the
// entry frame of the running Call.
func (vm *VM) leave(fr *Frame, v Value) (Value, bool) {
	vm.opts.Tracer.TraceReturn(len(vm.frames), fr, v)
	vm.stack = vm.stack[:fr.base]
	vm.frames = vm.frames[:len(vm.frames)-1]
	if fr.entry {
		return v, true
	}
	if !v.IsNone() {
		vm.stack = append(vm.stack, v)
	}
	return Value{}, false
}

func (vm *VM) call(fr *Frame, in ir.Instruction) *VMError {
	argc, err := safecast.Conv[int](in.Int)
	if err != nil || argc < 0 {
		return vm.makeError(CodeArity, "call %s: bad argument count %d", in.Name, in.Int)
	}
	if len(vm.stack)-fr.base < argc {
		return vm.makeError(CodeStackUnderflow, "call %s: need %d arguments, stack has %d", in.Name, argc, len(vm.stack)-fr.base)
	}
	at := len(vm.stack) - argc
	args := make([]Value, argc)
	copy(args, vm.stack[at:])
	vm.stack = vm.stack[:at]
	return vm.enter(in.Name, args)
}

// step executes one instruction that neither calls nor returns.
func (vm *VM) step(fr *Frame, in ir.Instruction) *VMError {
	switch in.Op {
	case ir.OpPushInt:
		vm.push(IntValue(in.Int))
	case ir.OpPushFloat:
		vm.push(FloatValue(in.Float))
	case ir.OpPushString:
		vm.push(StringValue(in.Text))
	case ir.OpPushBool:
		vm.push(BoolValue(in.Bool))
	case ir.OpLoadVar:
		v, ok := fr.vars[in.Name]
		if !ok {
			return vm.makeError(CodeUndefinedVariable, "undefined variable '%s'", in.Name)
		}
		vm.push(v)
	case ir.OpStoreVar:
		v, err := vm.pop(fr)
		if err != nil {
			return err
		}
		fr.vars[in.Name] = v
	case ir.OpPop:
		if _, err := vm.pop(fr); err != nil {
			return err
		}
	case ir.OpNeg, ir.OpNot:
		v, err := vm.pop(fr)
		if err != nil {
			return err
		}
		res, err := vm.unary(in.Op, v)
		if err != nil {
			return err
		}
		vm.push(res)
	case ir.OpJump:
		return vm.jump(fr, in.Name)
	case ir.OpJumpIfFalse:
		cond, err := vm.pop(fr)
		if err != nil {
			return err
		}
		if cond.Kind != VKBool {
			return vm.makeError(CodeTypeMismatch, "jump-if-false: condition is %s, not bool", cond.Kind)
		}
		if !cond.Bool {
			return vm.jump(fr, in.Name)
		}
	default:
		if !in.Op.IsBinary() {
			return vm.makeError(CodeUnknownOpcode, "cannot execute opcode %s", in.Op)
		}
		r, err := vm.pop(fr)
		if err != nil {
			return err
		}
		l, err := vm.pop(fr)
		if err != nil {
			return err
		}
		res, err := vm.binary(in.Op, l, r)
		if err != nil {
			return err
		}
		vm.push(res)
	}
	return nil
}

func (vm *VM) jump(fr *Frame, label string) *VMError {
	target, ok := fr.fn.labels[label]
	if !ok {
		return vm.makeError(CodeUnknownLabel, "unknown label '%s' in '%s'", label, fr.fn.Name)
	}
	fr.jump(target)
	return nil
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

// pop takes the top value of fr's part of the stack.
func (vm *VM) pop(fr *Frame) (Value, *VMError) {
	if len(vm.stack) <= fr.base {
		return Value{}, vm.makeError(CodeStackUnderflow, "stack underflow in '%s'", fr.fn.Name)
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}
