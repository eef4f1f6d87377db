package ir

import (
	"errors"
	"fmt"

	"grok/internal/ast"
	"grok/internal/diag"
	"grok/internal/types"
)

// Typing is the type information the generator reads. *sema.Result
// implements it.
type Typing interface {
	TypeOf(e ast.Expr) types.Type
	FuncType(name string) (*types.Function, bool)
}

// Generate lowers every function with a body. The file must have checked
// without errors: whether an expression leaves a value on the stack is
// decided by its inferred type, and unit-typed expressions leave none.
func Generate(file *ast.File, typing Typing) ([]*Function, error) {
	if file == nil {
		return nil, nil
	}
	if typing == nil {
		return nil, errors.New("ir: generate needs type information")
	}
	var (
		out  []*Function
		errs []error
	)
	for _, decl := range file.Funcs() {
		if decl.Body == nil {
			continue
		}
		fn, err := lowerFunc(decl, typing)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, fn)
	}
	return out, errors.Join(errs...)
}

type funcLowerer struct {
	typing Typing
	f      *Function
	cur    *Block

	labels  int
	scope   *varScope
	renames map[string]int

	// returnsValue is true when the function's result type is not unit.
	returnsValue bool
}

// varScope maps source names to the IR variable names they are stored under.
type varScope struct {
	parent *varScope
	names  map[string]string
}

func (s *varScope) lookup(name string) (string, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if irName, ok := sc.names[name]; ok {
			return irName, true
		}
	}
	return "", false
}

func lowerFunc(decl *ast.FnDecl, typing Typing) (*Function, error) {
	l := &funcLowerer{
		typing:  typing,
		f:       &Function{Name: decl.Name},
		scope:   &varScope{names: make(map[string]string)},
		renames: make(map[string]int),
	}
	sig, hasSig := typing.FuncType(decl.Name)
	for i, p := range decl.Params {
		param := Param{Name: p.Name}
		if hasSig && i < len(sig.Params) {
			param.Type = typeName(sig.Params[i])
		}
		l.f.Params = append(l.f.Params, param)
		l.scope.names[p.Name] = p.Name
	}
	if hasSig {
		l.f.Result = typeName(sig.Result)
		l.returnsValue = !types.IsUnit(sig.Result)
	} else {
		l.returnsValue = l.yields(decl.Body)
	}

	l.start(l.newBlock("entry"))
	if err := l.lowerBlock(decl.Body); err != nil {
		return nil, err
	}
	if !l.cur.Terminated() {
		l.emit(Return(l.returnsValue))
	}
	return l.f, nil
}

// typeName renders t for display; unsolved variables are left blank.
func typeName(t types.Type) string {
	if _, ok := t.(*types.Variable); ok || t == nil {
		return ""
	}
	return t.String()
}

func (l *funcLowerer) newBlock(label string) *Block {
	return &Block{Label: label}
}

// start appends b to the function and makes it current. Blocks are laid out
// in the order they are started, which is what fall-through follows.
func (l *funcLowerer) start(b *Block) {
	l.f.Blocks = append(l.f.Blocks, b)
	l.cur = b
}

func (l *funcLowerer) emit(in Instruction) {
	if l.cur.Terminated() {
		return
	}
	l.cur.Instrs = append(l.cur.Instrs, in)
}

func (l *funcLowerer) nextLabel() int {
	l.labels++
	return l.labels
}

func label(kind string, n int) string {
	return fmt.Sprintf("%s_%d", kind, n)
}

func (l *funcLowerer) pushScope() {
	l.scope = &varScope{parent: l.scope, names: make(map[string]string)}
}

func (l *funcLowerer) popScope() {
	l.scope = l.scope.parent
}

// declare returns the IR name for a let binding in the current scope. A
// binding that would hide a name of an enclosing scope gets a fresh name so
// the outer variable survives the block.
func (l *funcLowerer) declare(name string) string {
	if irName, ok := l.scope.names[name]; ok {
		return irName
	}
	irName := name
	if _, hidden := l.scope.parent.lookup(name); hidden {
		l.renames[name]++
		irName = fmt.Sprintf("%s.%d", name, l.renames[name])
	}
	l.scope.names[name] = irName
	return irName
}

func (l *funcLowerer) resolve(name string) string {
	if irName, ok := l.scope.lookup(name); ok {
		return irName
	}
	return name
}

// yields reports whether lowering e leaves a value on the stack.
func (l *funcLowerer) yields(e ast.Expr) bool {
	t := l.typing.TypeOf(e)
	return t == nil || !types.IsUnit(t)
}

func (l *funcLowerer) errorf(n ast.Node, format string, args ...any) error {
	return &Error{
		Code: diag.IRBadOperands,
		Func: l.f.Name,
		Span: n.Span(),
		Msg:  fmt.Sprintf(format, args...),
	}
}
