package types

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Substitution maps type variable names to types.
type Substitution map[string]Type

// Apply replaces every bound variable in t, chasing chains until a fixed point.
func (s Substitution) Apply(t Type) Type {
	switch t := t.(type) {
	case *Variable:
		bound, ok := s[t.Name]
		if !ok {
			return t
		}
		return s.Apply(bound)
	case *Generic:
		if len(t.Args) == 0 {
			return t
		}
		return &Generic{Name: t.Name, Args: s.applyAll(t.Args)}
	case *Function:
		return &Function{Params: s.applyAll(t.Params), Result: s.Apply(t.Result)}
	default:
		return t
	}
}

func (s Substitution) applyAll(ts []Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

// String renders the bindings sorted by variable name.
func (s Substitution) String() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " := " + s.Apply(s[name]).String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FreeVars returns the names of the type variables occurring in t.
func FreeVars(t Type) *set.Set[string] {
	out := set.New[string](0)
	collectVars(t, out)
	return out
}

func collectVars(t Type, out *set.Set[string]) {
	switch t := t.(type) {
	case *Variable:
		out.Insert(t.Name)
	case *Generic:
		for _, a := range t.Args {
			collectVars(a, out)
		}
	case *Function:
		for _, p := range t.Params {
			collectVars(p, out)
		}
		collectVars(t.Result, out)
	}
}

// Occurs reports whether the variable name appears inside t.
func Occurs(name string, t Type) bool {
	return FreeVars(t).Contains(name)
}
