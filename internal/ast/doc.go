// Package ast defines the syntax tree produced by the parser and consumed by
// the type checker and the IR generator.
//
// Every node family (Expr, Stmt, Item, TypeExpr) is a closed sum type: the
// interfaces carry an unexported marker method, so only this package can add
// variants and consumers can switch exhaustively over the concrete types.
// Each node records the source span it was parsed from.
package ast
