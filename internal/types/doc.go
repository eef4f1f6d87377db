// Package types holds the type model used by inference: the Type variants,
// the scoped type Environment, equality Constraints, Substitutions and the
// unifier that solves constraint sets.
//
// Types are immutable once built. A Substitution maps variable names to
// types and is always applied transitively; the unifier keeps it free of
// cycles through the occurs check, so Apply terminates.
package types
