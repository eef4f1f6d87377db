// Package token defines lexical token kinds for the grok toolchain.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never appear in the token stream.
//   - Type names (i32, f64, bool, str, unit) are identifiers.
//     They are recognized by the type checker, not the lexer.
package token
