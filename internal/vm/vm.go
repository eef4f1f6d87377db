package vm

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"grok/internal/ir"
	"grok/internal/trace"
)

const (
	DefaultHotspotThreshold = 100
	DefaultMaxCallDepth     = 1024
)

// Options configure a VM.
type Options struct {
	// HotspotThreshold is the call count a function must exceed to be a
	// hotspot. Zero means DefaultHotspotThreshold.
	HotspotThreshold int
	// MaxCallDepth bounds the number of active frames. Zero means
	// DefaultMaxCallDepth.
	MaxCallDepth int
	// Tracer, when set, prints each executed instruction.
	Tracer *Tracer
	// Trace receives a span per Call.
	Trace      trace.Tracer
	ParentSpan uint64
}

// VM executes IR functions on an operand stack shared by all frames.
type VM struct {
	opts     Options
	funcs    map[string]*function
	stack    []Value
	frames   []*Frame
	profiler *Profiler
	runID    uuid.UUID
	steps    uint64
}

func New(opts Options) *VM {
	if opts.HotspotThreshold <= 0 {
		opts.HotspotThreshold = DefaultHotspotThreshold
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	return &VM{
		opts:     opts,
		funcs:    make(map[string]*function),
		profiler: NewProfiler(opts.HotspotThreshold),
		runID:    uuid.New(),
	}
}

// LoadProgram adds fns to the function table, replacing functions of the
// same name. Jump targets are resolved at run time.
func (vm *VM) LoadProgram(fns []*ir.Function) error {
	loaded := make(map[string]*function, len(fns))
	for _, f := range fns {
		if f == nil {
			continue
		}
		if _, dup := loaded[f.Name]; dup {
			return fmt.Errorf("vm: function %q defined twice", f.Name)
		}
		if len(f.Blocks) == 0 {
			return fmt.Errorf("vm: function %q has no blocks", f.Name)
		}
		lf := &function{Function: f, labels: make(map[string]int, len(f.Blocks))}
		for i, b := range f.Blocks {
			if b == nil {
				return fmt.Errorf("vm: function %q: block %d is nil", f.Name, i)
			}
			if _, dup := lf.labels[b.Label]; dup {
				return fmt.Errorf("vm: function %q: duplicate label %q", f.Name, b.Label)
			}
			lf.labels[b.Label] = i
		}
		loaded[f.Name] = lf
	}
	for name, f := range loaded {
		vm.funcs[name] = f
	}
	return nil
}

// HasFunction reports whether name is loaded.
func (vm *VM) HasFunction(name string) bool {
	_, ok := vm.funcs[name]
	return ok
}

func (vm *VM) Profiler() *Profiler { return vm.profiler }

// RunID identifies this VM in traces and profile reports.
func (vm *VM) RunID() uuid.UUID { return vm.runID }

// Steps is the number of instructions executed so far.
func (vm *VM) Steps() uint64 { return vm.steps }

// Depth is the number of active frames.
func (vm *VM) Depth() int { return len(vm.frames) }

// Call runs the named function to completion. The result has kind VKNone
// when the function returns no value. On error every frame pushed by this
// call is discarded.
func (vm *VM) Call(ctx context.Context, name string, args ...Value) (result Value, err error) {
	frames, height := len(vm.frames), len(vm.stack)
	startSteps := vm.steps
	span := trace.Begin(vm.opts.Trace, trace.ScopeModule, "vm call:"+name, vm.opts.ParentSpan)
	defer func() {
		detail := "ok"
		if err != nil {
			detail = err.Error()
			vm.frames = vm.frames[:frames]
			vm.stack = vm.stack[:height]
		}
		span.WithExtra("run_id", vm.runID.String()).
			WithExtra("steps", strconv.FormatUint(vm.steps-startSteps, 10)).
			End(detail)
	}()

	if verr := vm.enter(name, args); verr != nil {
		return Value{}, verr
	}
	vm.frames[len(vm.frames)-1].entry = true
	return vm.run(ctx)
}

// enter pushes a frame for name with args bound to its parameters.
func (vm *VM) enter(name string, args []Value) *VMError {
	fn, ok := vm.funcs[name]
	if !ok {
		return vm.makeError(CodeUndefinedFunction, "undefined function '%s'", name)
	}
	if len(args) != len(fn.Params) {
		return vm.makeError(CodeArity, "'%s' takes %d arguments, got %d", name, len(fn.Params), len(args))
	}
	if len(vm.frames) >= vm.opts.MaxCallDepth {
		return vm.makeError(CodeCallDepth, "call depth limit %d exceeded calling '%s'", vm.opts.MaxCallDepth, name)
	}
	vm.profiler.Record(name)
	fr := &Frame{
		fn:   fn,
		vars: make(map[string]Value, len(fn.Params)),
		base: len(vm.stack),
	}
	for i, p := range fn.Params {
		fr.vars[p.Name] = args[i]
	}
	vm.frames = append(vm.frames, fr)
	return nil
}

// IsVMError reports whether err carries a VM error code.
func IsVMError(err error) bool {
	var ve *VMError
	return errors.As(err, &ve)
}
