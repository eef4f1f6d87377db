package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"grok/internal/ir"
	"grok/internal/observ"
	"grok/internal/trace"
	"grok/internal/vm"
)

// ErrNoEntry is returned when the entry function is not in the program.
var ErrNoEntry = errors.New("entry function not found")

// ExecOptions configure Execute.
type ExecOptions struct {
	Entry    string
	Args     []vm.Value
	VM       vm.Options
	Timer    *observ.Timer
	Observer PhaseObserver
}

// Execution is the outcome of running a program.
type Execution struct {
	Result vm.Value
	VM     *vm.VM
}

// Execute loads fns into a fresh VM and calls the entry function. The VM
// is returned even on failure so its profiler can still be reported.
func Execute(ctx context.Context, fns []*ir.Function, opts ExecOptions) (*Execution, error) {
	entry := opts.Entry
	if entry == "" {
		entry = "main"
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "execute", trace.CurrentSpan(ctx).SpanID).WithExtra("entry", entry)
	idx := opts.Timer.Begin("execute")
	opts.Observer.emit(PhaseEvent{Name: "execute", Status: PhaseStart})
	start := time.Now()

	vmOpts := opts.VM
	if vmOpts.Trace == nil {
		vmOpts.Trace = tracer
	}
	vmOpts.ParentSpan = span.ID()
	machine := vm.New(vmOpts)
	exec := &Execution{VM: machine}

	err := machine.LoadProgram(fns)
	if err == nil && !machine.HasFunction(entry) {
		err = fmt.Errorf("%w: %q", ErrNoEntry, entry)
	}
	if err == nil {
		exec.Result, err = machine.Call(ctx, entry, opts.Args...)
	}

	note := "steps=" + strconv.FormatUint(machine.Steps(), 10)
	opts.Timer.End(idx, note)
	opts.Observer.emit(PhaseEvent{Name: "execute", Status: PhaseEnd, Elapsed: time.Since(start)})
	span.WithExtra("run_id", machine.RunID().String()).End(note)
	return exec, err
}
