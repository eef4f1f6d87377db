package sema

import (
	"grok/internal/ast"
	"grok/internal/types"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// CollectorOptions configure a Collector.
type CollectorOptions struct {
	// MaxDepth bounds recursion; zero means DefaultMaxDepth.
	MaxDepth int
	// StrictLogical constrains the operands of && || and ! to bool.
	StrictLogical bool
	// Supply hands out fresh variables. A private one is used when nil.
	Supply *types.Supply
	// Resolve turns annotations into types. Only primitives resolve when nil.
	Resolve func(ast.TypeExpr) types.Type
}

// Collector walks expressions and records the equality constraints their
// typing rules imply. It never solves them.
type Collector struct {
	supply        *types.Supply
	resolve       func(ast.TypeExpr) types.Type
	maxDepth      int
	strictLogical bool

	depth         int
	depthReported bool
	result        types.Type

	constraints []types.Constraint
	exprTypes   map[ast.Expr]types.Type
	errs        []error
}

// NewCollector returns an empty collector.
func NewCollector(opts CollectorOptions) *Collector {
	c := &Collector{
		supply:        opts.Supply,
		resolve:       opts.Resolve,
		maxDepth:      opts.MaxDepth,
		strictLogical: opts.StrictLogical,
		exprTypes:     make(map[ast.Expr]types.Type),
	}
	if c.supply == nil {
		c.supply = &types.Supply{}
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.resolve == nil {
		c.resolve = c.resolvePrimitive
	}
	return c
}

// Constraints returns the constraints in emission order.
func (c *Collector) Constraints() []types.Constraint { return c.constraints }

// Errors returns the name and shape errors met while collecting.
func (c *Collector) Errors() []error { return c.errs }

// ExprTypes returns the unsolved type recorded for every visited expression.
func (c *Collector) ExprTypes() map[ast.Expr]types.Type { return c.exprTypes }

// Fresh returns a new type variable from the collector's supply.
func (c *Collector) Fresh() *types.Variable { return c.supply.Fresh() }

// EnterFunction sets the type that return statements are checked against
// and returns the previous one.
func (c *Collector) EnterFunction(result types.Type) types.Type {
	prev := c.result
	c.result = result
	return prev
}

// Constrain appends left ~ right, attributed to the given node.
func (c *Collector) Constrain(left, right types.Type, at ast.Node) {
	c.constraints = append(c.constraints, types.Constraint{Left: left, Right: right, Span: at.Span()})
}

// Collect returns the type of e in env, recording constraints on the way.
func (c *Collector) Collect(e ast.Expr, env *types.Env) types.Type {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.maxDepth {
		if !c.depthReported {
			c.depthReported = true
			c.errs = append(c.errs, &DepthLimitError{Limit: c.maxDepth, Span: e.Span()})
		}
		return c.supply.Fresh()
	}

	t := c.collect(e, env)
	c.exprTypes[e] = t
	return t
}

func (c *Collector) collect(e ast.Expr, env *types.Env) types.Type {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.I32
	case *ast.FloatLit:
		return types.F64
	case *ast.StringLit:
		return types.Str
	case *ast.BoolLit:
		return types.Bool
	case *ast.Ident:
		return c.lookup(e, env)
	case *ast.Unary:
		return c.collectUnary(e, env)
	case *ast.Binary:
		return c.collectBinary(e, env)
	case *ast.Call:
		return c.collectCall(e, env)
	case *ast.If:
		return c.collectIf(e, env)
	case *ast.Block:
		return c.CollectBlock(e, env)
	case *ast.Assign:
		return c.collectAssign(e, env)
	default:
		return c.supply.Fresh()
	}
}

func (c *Collector) lookup(id *ast.Ident, env *types.Env) types.Type {
	if t, ok := env.Lookup(id.Name); ok {
		return t
	}
	c.errs = append(c.errs, &UnboundNameError{Name: id.Name, Span: id.At})
	return c.supply.Fresh()
}

func (c *Collector) collectUnary(e *ast.Unary, env *types.Env) types.Type {
	x := c.Collect(e.X, env)
	switch e.Op {
	case ast.OpNot:
		if c.strictLogical {
			c.Constrain(x, types.Bool, e.X)
		}
		return types.Bool
	default:
		return x
	}
}

func (c *Collector) collectBinary(e *ast.Binary, env *types.Env) types.Type {
	left := c.Collect(e.Left, env)
	right := c.Collect(e.Right, env)
	switch {
	case e.Op.IsArithmetic():
		c.Constrain(left, right, e)
		return left
	case e.Op.IsLogical():
		if c.strictLogical {
			c.Constrain(left, types.Bool, e.Left)
			c.Constrain(right, types.Bool, e.Right)
		}
		return types.Bool
	default:
		return types.Bool
	}
}

func (c *Collector) collectCall(e *ast.Call, env *types.Env) types.Type {
	callee := c.Collect(e.Callee, env)
	args := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		args[i] = c.Collect(arg, env)
	}

	switch fn := callee.(type) {
	case *types.Function:
		if len(fn.Params) != len(args) {
			// Surfaces as an arity UnificationError once solved.
			c.Constrain(types.Fn(fn.Result, args...), fn, e)
			return fn.Result
		}
		for i, arg := range args {
			c.Constrain(arg, fn.Params[i], e.Args[i])
		}
		return fn.Result
	case *types.Variable:
		// An unannotated parameter used as a function.
		result := c.supply.Fresh()
		c.Constrain(callee, types.Fn(result, args...), e)
		return result
	default:
		err := &NotAFunctionError{Type: callee, Span: e.Callee.Span()}
		if id, ok := e.Callee.(*ast.Ident); ok {
			err.Callee = id.Name
		}
		c.errs = append(c.errs, err)
		return c.supply.Fresh()
	}
}

func (c *Collector) collectIf(e *ast.If, env *types.Env) types.Type {
	cond := c.Collect(e.Cond, env)
	c.Constrain(cond, types.Bool, e.Cond)
	then := c.Collect(e.Then, env)
	if e.Else == nil {
		return types.Unit
	}
	els := c.Collect(e.Else, env)
	c.Constrain(then, els, e)
	return then
}

func (c *Collector) collectAssign(e *ast.Assign, env *types.Env) types.Type {
	value := c.Collect(e.Value, env)
	target := c.lookup(e.Target, env)
	c.exprTypes[e.Target] = target
	c.Constrain(value, target, e)
	return types.Unit
}

func (c *Collector) resolvePrimitive(te ast.TypeExpr) types.Type {
	if named, ok := te.(*ast.NamedType); ok && len(named.Args) == 0 {
		if p, ok := types.LookupPrimitive(named.Name); ok {
			return p
		}
	}
	return c.supply.Fresh()
}
