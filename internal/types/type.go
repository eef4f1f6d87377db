package types

import (
	"strings"
)

// Type is the closed set of type variants.
type Type interface {
	String() string
	typeNode()
}

type (
	// Primitive is a built-in scalar such as i32, f64, bool, str or unit.
	Primitive struct {
		Name string
	}

	// Variable is an inference placeholder.
	Variable struct {
		Name string
	}

	// Generic is a parameterized constructor applied to arguments, e.g. Vec<T>.
	Generic struct {
		Name string
		Args []Type
	}

	Function struct {
		Params []Type
		Result Type
	}

	// Struct is nominal: two structs are the same type when their names match.
	Struct struct {
		Name   string
		Fields []Field
	}

	Field struct {
		Name string
		Type Type
	}

	// Trait is nominal like Struct. Method signatures may be nil.
	Trait struct {
		Name    string
		Methods []Method
	}

	Method struct {
		Name string
		Sig  Type
	}
)

func (*Primitive) typeNode() {}
func (*Variable) typeNode()  {}
func (*Generic) typeNode()   {}
func (*Function) typeNode()  {}
func (*Struct) typeNode()    {}
func (*Trait) typeNode()     {}

// Builtin primitives.
var (
	I32  = &Primitive{Name: "i32"}
	I64  = &Primitive{Name: "i64"}
	F64  = &Primitive{Name: "f64"}
	Bool = &Primitive{Name: "bool"}
	Str  = &Primitive{Name: "str"}
	Unit = &Primitive{Name: "unit"}
)

var builtins = map[string]*Primitive{
	"i32":  I32,
	"i64":  I64,
	"f64":  F64,
	"bool": Bool,
	"str":  Str,
	"unit": Unit,
}

// LookupPrimitive returns the builtin primitive called name.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := builtins[name]
	return p, ok
}

func Var(name string) *Variable { return &Variable{Name: name} }

func Gen(name string, args ...Type) *Generic { return &Generic{Name: name, Args: args} }

func Fn(result Type, params ...Type) *Function { return &Function{Params: params, Result: result} }

// IsUnit reports whether t is the unit primitive.
func IsUnit(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Name == Unit.Name
}

func (t *Primitive) String() string { return t.Name }
func (t *Variable) String() string  { return t.Name }
func (t *Struct) String() string    { return t.Name }
func (t *Trait) String() string     { return t.Name }

func (t *Generic) String() string {
	return t.Name + "<" + joinTypes(t.Args) + ">"
}

func (t *Function) String() string {
	return "fn(" + joinTypes(t.Params) + ") -> " + t.Result.String()
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Equal reports structural equality. Structs and traits compare by name.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Name == b.Name
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name
	case *Generic:
		b, ok := b.(*Generic)
		return ok && a.Name == b.Name && equalAll(a.Args, b.Args)
	case *Function:
		b, ok := b.(*Function)
		return ok && equalAll(a.Params, b.Params) && Equal(a.Result, b.Result)
	case *Struct:
		b, ok := b.(*Struct)
		return ok && a.Name == b.Name
	case *Trait:
		b, ok := b.(*Trait)
		return ok && a.Name == b.Name
	default:
		return false
	}
}

func equalAll(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}
