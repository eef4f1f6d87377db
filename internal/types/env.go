package types

// Env is one frame of a lexical scope chain. Frames only point outward, so
// a child never changes what its parent sees.
type Env struct {
	parent *Env
	vars   map[string]Type
}

// NewEnv returns an empty root frame.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Type)}
}

// Bind inserts or overwrites name in the current frame.
func (e *Env) Bind(name string, t Type) {
	e.vars[name] = t
}

// Lookup returns the nearest binding of name, walking outward.
func (e *Env) Lookup(name string) (Type, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupLocal only consults the current frame.
func (e *Env) LookupLocal(name string) (Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

// EnterScope returns a new child frame whose parent is e.
func (e *Env) EnterScope() *Env {
	return &Env{parent: e, vars: make(map[string]Type)}
}

func (e *Env) Parent() *Env { return e.parent }
