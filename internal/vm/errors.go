package vm

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the kind of runtime failure.
type ErrorCode int

// Stable error codes - do not change values.
const (
	CodeUndefinedFunction ErrorCode = 1001 // VM1001: call to a function not in the table
	CodeUndefinedVariable ErrorCode = 1002 // VM1002: load of an unset variable
	CodeStackUnderflow    ErrorCode = 1003 // VM1003: pop from an empty frame stack
	CodeTypeMismatch      ErrorCode = 1004 // VM1004: operand kinds the opcode does not accept
	CodeUnknownLabel      ErrorCode = 1005 // VM1005: jump to a label the function lacks
	CodeArity             ErrorCode = 1006 // VM1006: wrong number of arguments
	CodeCallDepth         ErrorCode = 1007 // VM1007: call depth limit exceeded
	CodeDivisionByZero    ErrorCode = 1008 // VM1008: integer division or modulo by zero
	CodeUnknownOpcode     ErrorCode = 1009 // VM1009: opcode the VM cannot execute
)

// String returns the code as "VM1001" format.
func (c ErrorCode) String() string {
	return fmt.Sprintf("VM%d", int(c))
}

// Sentinels for errors.Is; only the code is compared.
var (
	ErrUndefinedFunction = &VMError{Code: CodeUndefinedFunction}
	ErrUndefinedVariable = &VMError{Code: CodeUndefinedVariable}
	ErrStackUnderflow    = &VMError{Code: CodeStackUnderflow}
	ErrTypeMismatch      = &VMError{Code: CodeTypeMismatch}
	ErrUnknownLabel      = &VMError{Code: CodeUnknownLabel}
	ErrArity             = &VMError{Code: CodeArity}
	ErrCallDepth         = &VMError{Code: CodeCallDepth}
	ErrDivisionByZero    = &VMError{Code: CodeDivisionByZero}
	ErrUnknownOpcode     = &VMError{Code: CodeUnknownOpcode}
)

// BacktraceFrame is one active call when an error was raised.
type BacktraceFrame struct {
	FuncName string
	Block    string
	IP       int
}

// VMError is a runtime failure. It aborts the whole Call that raised it.
type VMError struct {
	Code      ErrorCode
	Message   string
	Backtrace []BacktraceFrame // innermost first
}

func (e *VMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	return ok && t.Code == e.Code
}

// Detailed renders the error with its backtrace.
func (e *VMError) Detailed() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error %s: %s\n", e.Code, e.Message)
	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, fr := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s:%d\n", i, fr.FuncName, fr.Block, fr.IP)
		}
	}
	return sb.String()
}

func (vm *VM) makeError(code ErrorCode, format string, args ...any) *VMError {
	e := &VMError{Code: code, Message: fmt.Sprintf(format, args...)}
	e.Backtrace = make([]BacktraceFrame, 0, len(vm.frames))
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := vm.frames[i]
		e.Backtrace = append(e.Backtrace, BacktraceFrame{
			FuncName: fr.fn.Name,
			Block:    fr.block().Label,
			IP:       max(fr.ip-1, 0),
		})
	}
	return e
}

func (vm *VM) typeMismatch(op string, l, r Value) *VMError {
	return vm.makeError(CodeTypeMismatch, "%s: unsupported operands %s and %s", op, l.Kind, r.Kind)
}
