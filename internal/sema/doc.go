// Package sema infers types for a parsed file.
//
// The Collector walks each function body and emits equality constraints;
// the checker declares every top-level item up front, collects all bodies,
// then runs a single unification over the whole constraint set. Every
// failure is kept and turned into a diagnostic.
package sema
