package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/ir"
	"grok/internal/lexer"
	"grok/internal/observ"
	"grok/internal/parser"
	"grok/internal/sema"
	"grok/internal/source"
	"grok/internal/trace"
)

// Stage is the last pipeline phase Compile runs.
type Stage uint8

const (
	StageParse Stage = iota
	StageCheck
	StageGenerate
)

// DefaultMaxDiagnostics applies when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configure one compilation.
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	MaxDepth       int
	StrictLogical  bool
	// Timer, when set, receives one phase per pipeline stage.
	Timer    *observ.Timer
	Observer PhaseObserver
}

// Compilation holds everything produced for one source file.
type Compilation struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	File    *ast.File
	Bag     *diag.Bag
	Sema    *sema.Result
	Funcs   []*ir.Function
}

// HasErrors reports whether any stage produced an error diagnostic.
func (c *Compilation) HasErrors() bool {
	return c != nil && c.Bag.HasErrors()
}

// Compile loads path and runs the pipeline up to opts.Stage. The returned
// error covers I/O and cancellation only; language errors are diagnostics
// in the Bag. Code generation is skipped when earlier stages failed.
func Compile(ctx context.Context, path string, opts Options) (*Compilation, error) {
	fs := source.NewFileSet()
	loadIdx := opts.Timer.Begin("load " + path)
	id, err := fs.Load(path)
	opts.Timer.End(loadIdx, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return compile(ctx, fs, id, opts)
}

// CompileSource runs the pipeline on in-memory source.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*Compilation, error) {
	fs := source.NewFileSet()
	return compile(ctx, fs, fs.AddVirtual(name, src), opts)
}

func compile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Compilation, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	tracer := trace.FromContext(ctx)
	file := fs.Get(id)
	root := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx).SpanID).WithExtra("path", file.Path)
	defer root.End("")

	c := &Compilation{
		Path:    file.Path,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := diag.BagReporter{Bag: c.Bag}
	p := pipeline{tracer: tracer, parent: root.ID(), opts: opts}

	p.phase("parse", func() string {
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		res := parser.ParseFile(id, lx, parser.Options{MaxDepth: opts.MaxDepth, Reporter: reporter})
		c.File = res.File
		return fmt.Sprintf("items=%d", len(c.File.Items))
	})
	if opts.Stage < StageCheck || c.HasErrors() {
		return c, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return c, err
	}

	p.phase("check", func() string {
		c.Sema = sema.Check(c.File, sema.Options{
			Reporter:      reporter,
			MaxDepth:      opts.MaxDepth,
			StrictLogical: opts.StrictLogical,
			Tracer:        tracer,
			ParentSpan:    p.current,
		})
		return fmt.Sprintf("constraints=%d", len(c.Sema.Constraints))
	})
	if opts.Stage < StageGenerate || c.HasErrors() {
		return c, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return c, err
	}

	var genErr error
	p.phase("generate", func() string {
		c.Funcs, genErr = ir.Generate(c.File, c.Sema)
		return fmt.Sprintf("funcs=%d", len(c.Funcs))
	})
	reportIRErrors(c.Bag, genErr)
	if genErr != nil && !c.HasErrors() {
		return c, genErr
	}
	if c.HasErrors() {
		return c, nil
	}

	var valErr error
	p.phase("validate", func() string {
		valErr = ir.Validate(c.Funcs)
		return ""
	})
	reportIRErrors(c.Bag, valErr)
	return c, ctx.Err()
}

// reportIRErrors turns every *ir.Error inside err into a diagnostic.
func reportIRErrors(bag *diag.Bag, err error) {
	if err == nil {
		return
	}
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
			bag.Add(irErr.Diagnostic())
		}
	}
	walk(err)
}

type pipeline struct {
	tracer  trace.Tracer
	parent  uint64
	current uint64
	opts    Options
}

// phase runs fn under a trace span, a timer phase and observer events.
// fn returns the note recorded for the phase.
func (p *pipeline) phase(name string, fn func() string) {
	span := trace.Begin(p.tracer, trace.ScopePass, name, p.parent)
	idx := p.opts.Timer.Begin(name)
	p.opts.Observer.emit(PhaseEvent{Name: name, Status: PhaseStart})
	p.current = span.ID()
	start := time.Now()

	note := fn()

	p.current = 0
	p.opts.Timer.End(idx, note)
	p.opts.Observer.emit(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	span.End(note)
}
