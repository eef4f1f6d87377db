package sema

import (
	"grok/internal/ast"
	"grok/internal/types"
)

// CollectBlock types a block in its own child scope of env. The block's
// type is its tail, unit without one, or a fresh variable when the last
// statement returns.
func (c *Collector) CollectBlock(b *ast.Block, env *types.Env) types.Type {
	scope := env.EnterScope()
	for _, stmt := range b.Stmts {
		c.collectStmt(stmt, scope)
	}
	if b.Tail != nil {
		return c.Collect(b.Tail, scope)
	}
	if n := len(b.Stmts); n > 0 {
		if _, ok := b.Stmts[n-1].(*ast.Return); ok {
			return c.supply.Fresh()
		}
	}
	return types.Unit
}

func (c *Collector) collectStmt(s ast.Stmt, env *types.Env) {
	switch s := s.(type) {
	case *ast.Let:
		value := c.Collect(s.Value, env)
		if s.Type == nil {
			env.Bind(s.Name, value)
			return
		}
		declared := c.resolve(s.Type)
		c.Constrain(value, declared, s.Value)
		env.Bind(s.Name, declared)
	case *ast.ExprStmt:
		c.Collect(s.X, env)
	case *ast.While:
		cond := c.Collect(s.Cond, env)
		c.Constrain(cond, types.Bool, s.Cond)
		c.Collect(s.Body, env)
	case *ast.Return:
		var value types.Type = types.Unit
		if s.Value != nil {
			value = c.Collect(s.Value, env)
		}
		if c.result != nil {
			c.Constrain(value, c.result, s)
		}
	}
}
