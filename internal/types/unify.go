package types

import (
	"errors"

	"grok/internal/source"
)

// Solve unifies every constraint in order against one running substitution.
// Failures do not stop the pass; every one of them is returned.
func Solve(constraints []Constraint) (Substitution, []error) {
	u := unifier{subst: make(Substitution)}
	var errs []error
	for _, c := range constraints {
		u.span = c.Span
		if err := u.unify(c.Left, c.Right); err != nil {
			errs = append(errs, flatten(err)...)
		}
	}
	return u.subst, errs
}

// Unify is Solve with the failures joined into a single error.
func Unify(constraints []Constraint) (Substitution, error) {
	s, errs := Solve(constraints)
	return s, errors.Join(errs...)
}

// UnifyWith extends s in place so that a and b become equal.
func UnifyWith(s Substitution, a, b Type, span source.Span) error {
	u := unifier{subst: s, span: span}
	return u.unify(a, b)
}

type unifier struct {
	subst Substitution
	span  source.Span
}

func (u *unifier) unify(a, b Type) error {
	a = u.subst.Apply(a)
	b = u.subst.Apply(b)

	if av, ok := a.(*Variable); ok {
		if bv, ok := b.(*Variable); ok && bv.Name == av.Name {
			return nil
		}
		return u.bind(av, b)
	}
	if bv, ok := b.(*Variable); ok {
		return u.bind(bv, a)
	}

	switch a := a.(type) {
	case *Primitive:
		if b, ok := b.(*Primitive); ok && b.Name == a.Name {
			return nil
		}
	case *Generic:
		b, ok := b.(*Generic)
		if !ok || b.Name != a.Name {
			break
		}
		if len(a.Args) != len(b.Args) {
			return u.mismatch(a, b, MismatchArity)
		}
		return u.unifyAll(a.Args, b.Args)
	case *Function:
		b, ok := b.(*Function)
		if !ok {
			break
		}
		if len(a.Params) != len(b.Params) {
			return u.mismatch(a, b, MismatchArity)
		}
		return errors.Join(u.unifyAll(a.Params, b.Params), u.unify(a.Result, b.Result))
	case *Struct:
		if b, ok := b.(*Struct); ok && b.Name == a.Name {
			return nil
		}
	case *Trait:
		if b, ok := b.(*Trait); ok && b.Name == a.Name {
			return nil
		}
	}
	return u.mismatch(a, b, MismatchType)
}

// unifyAll unifies pairwise; each pair sees the bindings made by the previous ones.
func (u *unifier) unifyAll(as, bs []Type) error {
	var errs []error
	for i := range as {
		if err := u.unify(as[i], bs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (u *unifier) bind(v *Variable, t Type) error {
	if Occurs(v.Name, t) {
		return &InfiniteTypeError{Var: v, Type: t, Span: u.span}
	}
	u.subst[v.Name] = t
	return nil
}

func (u *unifier) mismatch(a, b Type, kind MismatchKind) error {
	return &UnificationError{Left: a, Right: b, Kind: kind, Span: u.span}
}

// flatten expands joined errors into their leaves.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
