package sema

import (
	"grok/internal/ast"
	"grok/internal/types"
)

// resolveType turns an annotation into a type. Struct and trait names
// resolve to their declarations; a name like T or U2 not declared anywhere
// is a type parameter shared across the current signature.
func (tc *typeChecker) resolveType(te ast.TypeExpr) types.Type {
	switch te := te.(type) {
	case *ast.NamedType:
		if len(te.Args) > 0 {
			args := make([]types.Type, len(te.Args))
			for i, a := range te.Args {
				args[i] = tc.resolveType(a)
			}
			return types.Gen(te.Name, args...)
		}
		if p, ok := types.LookupPrimitive(te.Name); ok {
			return p
		}
		if st, ok := tc.result.Structs[te.Name]; ok {
			return st
		}
		if tr, ok := tc.result.Traits[te.Name]; ok {
			return tr
		}
		if tc.typeParams != nil && isTypeParam(te.Name) {
			if v, ok := tc.typeParams[te.Name]; ok {
				return v
			}
			v := tc.collector.Fresh()
			tc.typeParams[te.Name] = v
			return v
		}
		tc.errs = append(tc.errs, &UnknownTypeError{Name: te.Name, Span: te.At})
		return tc.collector.Fresh()
	case *ast.FuncType:
		params := make([]types.Type, len(te.Params))
		for i, p := range te.Params {
			params[i] = tc.resolveType(p)
		}
		return types.Fn(tc.resolveType(te.Result), params...)
	default:
		return tc.collector.Fresh()
	}
}

// isTypeParam matches one upper-case letter optionally followed by digits.
func isTypeParam(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
