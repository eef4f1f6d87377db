package sema

import (
	"errors"
	"fmt"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/source"
	"grok/internal/trace"
	"grok/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter      diag.Reporter
	MaxDepth      int
	StrictLogical bool
	Tracer        trace.Tracer
	ParentSpan    uint64
}

// Result stores semantic artefacts produced by the checker. Types in
// ExprTypes and Funcs are unsolved; use TypeOf and FuncType to read them
// through the final substitution.
type Result struct {
	Subst       types.Substitution
	Constraints []types.Constraint
	ExprTypes   map[ast.Expr]types.Type
	Funcs       map[string]*types.Function
	Structs     map[string]*types.Struct
	Traits      map[string]*types.Trait
	Errors      []error
	Diagnostics []diag.Diagnostic
}

// TypeOf returns the solved type of e, or nil if e was never visited.
func (r *Result) TypeOf(e ast.Expr) types.Type {
	t, ok := r.ExprTypes[e]
	if !ok {
		return nil
	}
	return r.Subst.Apply(t)
}

// FuncType returns the solved signature of the named function.
func (r *Result) FuncType(name string) (*types.Function, bool) {
	fn, ok := r.Funcs[name]
	if !ok {
		return nil, false
	}
	solved, ok := r.Subst.Apply(fn).(*types.Function)
	return solved, ok
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// Check infers types for every declaration in file. All constraints are
// solved together once every body has been collected; failures become
// diagnostics and checking carries on.
func Check(file *ast.File, opts Options) *Result {
	res := &Result{
		Subst:   make(types.Substitution),
		Funcs:   make(map[string]*types.Function),
		Structs: make(map[string]*types.Struct),
		Traits:  make(map[string]*types.Trait),
	}
	tc := &typeChecker{
		opts:     opts,
		result:   res,
		env:      types.NewEnv(),
		declared: make(map[string]source.Span),
		sigs:     make(map[*ast.FnDecl]signature),
	}
	tc.collector = NewCollector(CollectorOptions{
		MaxDepth:      opts.MaxDepth,
		StrictLogical: opts.StrictLogical,
		Resolve:       tc.resolveType,
	})
	if file != nil {
		tc.run(file)
	}
	res.ExprTypes = tc.collector.ExprTypes()
	return res
}

type signature struct {
	fn         *types.Function
	typeParams map[string]types.Type
}

type typeChecker struct {
	opts      Options
	result    *Result
	env       *types.Env
	collector *Collector

	declared   map[string]source.Span
	sigs       map[*ast.FnDecl]signature
	typeParams map[string]types.Type
	errs       []error
}

func (tc *typeChecker) run(file *ast.File) {
	tc.declareTypes(file)
	tc.declareFuncs(file)
	for _, fn := range file.Funcs() {
		tc.checkFunc(fn)
	}

	subst, unifyErrs := types.Solve(tc.collector.Constraints())
	tc.result.Subst = subst
	tc.result.Constraints = tc.collector.Constraints()

	errs := make([]error, 0, len(tc.errs)+len(tc.collector.Errors())+len(unifyErrs))
	errs = append(errs, tc.errs...)
	errs = append(errs, tc.collector.Errors()...)
	errs = append(errs, unifyErrs...)
	tc.result.Errors = errs
	for _, err := range errs {
		tc.report(err)
	}
}

// declare claims name for a top-level item; false when it is already taken.
func (tc *typeChecker) declare(name string, span source.Span) bool {
	if prev, ok := tc.declared[name]; ok {
		tc.errs = append(tc.errs, &DuplicateDeclError{Name: name, Span: span, Previous: prev})
		return false
	}
	tc.declared[name] = span
	return true
}

// declareTypes registers structs and traits by name first so that field and
// signature annotations may refer to any of them.
func (tc *typeChecker) declareTypes(file *ast.File) {
	var structs []*ast.StructDecl
	var traits []*ast.TraitDecl
	for _, item := range file.Items {
		switch item := item.(type) {
		case *ast.StructDecl:
			if !tc.declare(item.Name, item.NameSpan) {
				continue
			}
			st := &types.Struct{Name: item.Name}
			tc.result.Structs[item.Name] = st
			tc.env.Bind(item.Name, st)
			structs = append(structs, item)
		case *ast.TraitDecl:
			if !tc.declare(item.Name, item.NameSpan) {
				continue
			}
			tr := &types.Trait{Name: item.Name}
			tc.result.Traits[item.Name] = tr
			tc.env.Bind(item.Name, tr)
			traits = append(traits, item)
		}
	}

	for _, decl := range structs {
		st := tc.result.Structs[decl.Name]
		tc.typeParams = make(map[string]types.Type)
		for _, f := range decl.Fields {
			st.Fields = append(st.Fields, types.Field{Name: f.Name, Type: tc.resolveType(f.Type)})
		}
	}
	for _, decl := range traits {
		tr := tc.result.Traits[decl.Name]
		for _, m := range decl.Methods {
			tr.Methods = append(tr.Methods, types.Method{Name: m.Name, Sig: tc.declaredSig(m)})
		}
	}
	tc.typeParams = nil
}

// declaredSig is the signature a trait method spells out in full, or nil.
func (tc *typeChecker) declaredSig(m *ast.FnDecl) types.Type {
	if m.Result == nil {
		return nil
	}
	for _, p := range m.Params {
		if p.Type == nil {
			return nil
		}
	}
	tc.typeParams = make(map[string]types.Type)
	params := make([]types.Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = tc.resolveType(p.Type)
	}
	return types.Fn(tc.resolveType(m.Result), params...)
}

// declareFuncs binds every function signature in the root scope before any
// body is looked at, so calls may refer forward and recurse.
func (tc *typeChecker) declareFuncs(file *ast.File) {
	for _, decl := range file.Funcs() {
		if !tc.declare(decl.Name, decl.NameSpan) {
			continue
		}
		tc.typeParams = make(map[string]types.Type)
		params := make([]types.Type, len(decl.Params))
		for i, p := range decl.Params {
			if p.Type != nil {
				params[i] = tc.resolveType(p.Type)
			} else {
				params[i] = tc.collector.Fresh()
			}
		}
		var result types.Type
		if decl.Result != nil {
			result = tc.resolveType(decl.Result)
		} else {
			result = tc.collector.Fresh()
		}
		fn := types.Fn(result, params...)
		tc.sigs[decl] = signature{fn: fn, typeParams: tc.typeParams}
		tc.result.Funcs[decl.Name] = fn
		tc.env.Bind(decl.Name, fn)
	}
	tc.typeParams = nil
}

func (tc *typeChecker) checkFunc(decl *ast.FnDecl) {
	sig, ok := tc.sigs[decl]
	if !ok || decl.Body == nil {
		return
	}
	span := trace.Begin(tc.opts.Tracer, trace.ScopeModule, "check fn:"+decl.Name, tc.opts.ParentSpan)
	before := len(tc.collector.Constraints())

	scope := tc.env.EnterScope()
	for i, p := range decl.Params {
		scope.Bind(p.Name, sig.fn.Params[i])
	}
	tc.typeParams = sig.typeParams
	prev := tc.collector.EnterFunction(sig.fn.Result)
	body := tc.collector.Collect(decl.Body, scope)
	tc.collector.Constrain(body, sig.fn.Result, decl.Body)
	tc.collector.EnterFunction(prev)
	tc.typeParams = nil

	span.WithExtra("constraints", fmt.Sprint(len(tc.collector.Constraints())-before)).End("")
}

func (tc *typeChecker) report(err error) {
	d := toDiagnostic(err)
	tc.result.Diagnostics = append(tc.result.Diagnostics, d)
	if tc.opts.Reporter != nil {
		tc.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}

func toDiagnostic(err error) diag.Diagnostic {
	var (
		unifyErr    *types.UnificationError
		infiniteErr *types.InfiniteTypeError
		unboundErr  *UnboundNameError
		notFnErr    *NotAFunctionError
		depthErr    *DepthLimitError
		unknownErr  *UnknownTypeError
		dupErr      *DuplicateDeclError
	)
	switch {
	case errors.As(err, &unifyErr):
		code := diag.TypMismatch
		if unifyErr.Kind == types.MismatchArity {
			code = diag.TypArity
		}
		return diag.NewError(code, unifyErr.Span, err.Error())
	case errors.As(err, &infiniteErr):
		return diag.NewError(diag.TypInfinite, infiniteErr.Span, err.Error())
	case errors.As(err, &unboundErr):
		return diag.NewError(diag.TypUnboundName, unboundErr.Span, err.Error())
	case errors.As(err, &notFnErr):
		return diag.NewError(diag.TypNotAFunction, notFnErr.Span, err.Error())
	case errors.As(err, &depthErr):
		return diag.NewError(diag.TypDepthLimit, depthErr.Span, err.Error())
	case errors.As(err, &unknownErr):
		return diag.NewError(diag.TypUnknownType, unknownErr.Span, err.Error())
	case errors.As(err, &dupErr):
		return diag.NewError(diag.TypDuplicateDecl, dupErr.Span, err.Error()).
			WithNote(dupErr.Previous, fmt.Sprintf("previous declaration of '%s' is here", dupErr.Name))
	default:
		return diag.NewError(diag.TypMismatch, source.Span{}, err.Error())
	}
}
