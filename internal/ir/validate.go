package ir

import (
	"errors"
	"fmt"

	"grok/internal/diag"
)

// Validate checks the invariants the VM relies on: every function has an
// entry block, labels are unique, jumps name existing blocks, calls name a
// function of the program with matching arity, and operands are well formed.
// Every violation is returned, joined.
func Validate(fns []*Function) error {
	byName := make(map[string]*Function, len(fns))
	for _, f := range fns {
		if f != nil {
			byName[f.Name] = f
		}
	}
	var errs []error
	for _, f := range fns {
		if f == nil {
			continue
		}
		errs = append(errs, validateFunc(f, byName)...)
	}
	return errors.Join(errs...)
}

func validateFunc(f *Function, byName map[string]*Function) []error {
	if len(f.Blocks) == 0 {
		return []error{&Error{Code: diag.IREmptyFunction, Func: f.Name, Msg: "function has no entry block"}}
	}

	var errs []error
	labels := make(map[string]bool, len(f.Blocks))
	for i, b := range f.Blocks {
		if b == nil {
			errs = append(errs, &Error{Code: diag.IRBadOperands, Func: f.Name, Index: i, Msg: fmt.Sprintf("block %d is nil", i)})
			continue
		}
		if labels[b.Label] {
			errs = append(errs, &Error{Code: diag.IRDuplicateLabel, Func: f.Name, Msg: fmt.Sprintf("duplicate block label %q", b.Label)})
		}
		labels[b.Label] = true
	}

	for _, b := range f.Blocks {
		if b == nil {
			continue
		}
		for i, in := range b.Instrs {
			fail := func(code diag.Code, format string, args ...any) {
				errs = append(errs, &Error{Code: code, Func: f.Name, Block: b.Label, Index: i, Msg: fmt.Sprintf(format, args...)})
			}
			switch {
			case !in.Op.Valid():
				fail(diag.IRUnknownOpcode, "unknown opcode %d", uint8(in.Op))
			case in.Op.IsJump():
				if !labels[in.Name] {
					fail(diag.IRUnknownTarget, "%s targets unknown block %q", in.Op, in.Name)
				}
			case in.Op == OpLoadVar || in.Op == OpStoreVar:
				if in.Name == "" {
					fail(diag.IRBadOperands, "%s without a variable name", in.Op)
				}
			case in.Op == OpReturn:
				if in.Int != 0 && in.Int != 1 {
					fail(diag.IRBadOperands, "return takes 0 or 1, got %d", in.Int)
				}
			case in.Op == OpCall:
				callee, ok := byName[in.Name]
				switch {
				case !ok:
					fail(diag.IRMissingFunction, "call to unknown function %q", in.Name)
				case in.Int != int64(len(callee.Params)):
					fail(diag.IRBadOperands, "call %s passes %d arguments, it takes %d", in.Name, in.Int, len(callee.Params))
				}
			}
		}
	}
	return errs
}
