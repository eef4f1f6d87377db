// Package diag defines the diagnostic model shared by every pipeline phase.
//
// Diagnostic is the central record: a Severity, a stable Code (LEX1xxx for the
// lexer, SYN2xxx for the parser, TYP3xxx for type checking, IR4xxx for IR
// validation), a short message, the primary span and optional notes.
//
// Producers never format anything. They emit into a Reporter, usually a
// BagReporter, either directly or through ReportBuilder:
//
//	diag.ReportError(r, diag.TypMismatch, span, "expected i32, found bool").
//		WithNote(declSpan, "declared here").
//		Emit()
//
// Bag keeps at most Cap diagnostics; Sort and Dedup make output deterministic.
// Rendering lives in internal/diagfmt.
package diag
