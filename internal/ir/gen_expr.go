package ir

import (
	"grok/internal/ast"
	"grok/internal/types"
)

var binaryOpcodes = map[ast.BinaryOp]Opcode{
	ast.OpAdd: OpAdd,
	ast.OpSub: OpSub,
	ast.OpMul: OpMul,
	ast.OpDiv: OpDiv,
	ast.OpMod: OpMod,
	ast.OpEq:  OpEq,
	ast.OpNe:  OpNe,
	ast.OpLt:  OpLt,
	ast.OpGt:  OpGt,
	ast.OpLe:  OpLe,
	ast.OpGe:  OpGe,
}

func (l *funcLowerer) lowerExpr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.IntLit:
		l.emit(PushInt(e.Value))
	case *ast.FloatLit:
		l.emit(PushFloat(e.Value))
	case *ast.StringLit:
		l.emit(PushString(e.Value))
	case *ast.BoolLit:
		l.emit(PushBool(e.Value))
	case *ast.Ident:
		if _, local := l.scope.lookup(e.Name); !local {
			if _, fn := l.typing.TypeOf(e).(*types.Function); fn {
				return l.errorf(e, "function '%s' cannot be used as a value", e.Name)
			}
		}
		if l.yields(e) {
			l.emit(LoadVar(l.resolve(e.Name)))
		}
	case *ast.Unary:
		if err := l.lowerValue(e.X); err != nil {
			return err
		}
		if e.Op == ast.OpNot {
			l.emit(Simple(OpNot))
		} else {
			l.emit(Simple(OpNeg))
		}
	case *ast.Binary:
		return l.lowerBinary(e)
	case *ast.Call:
		return l.lowerCall(e)
	case *ast.If:
		return l.lowerIf(e)
	case *ast.Block:
		return l.lowerBlock(e)
	case *ast.Assign:
		if err := l.lowerExpr(e.Value); err != nil {
			return err
		}
		if l.yields(e.Value) {
			l.emit(StoreVar(l.resolve(e.Target.Name)))
		}
	default:
		return l.errorf(e, "cannot lower %T", e)
	}
	return nil
}

// lowerValue lowers e where exactly one stack value is required.
func (l *funcLowerer) lowerValue(e ast.Expr) error {
	if !l.yields(e) {
		return l.errorf(e, "expression of type unit used as a value")
	}
	return l.lowerExpr(e)
}

func (l *funcLowerer) lowerBinary(e *ast.Binary) error {
	if e.Op.IsLogical() {
		return l.lowerLogical(e)
	}
	if err := l.lowerValue(e.Left); err != nil {
		return err
	}
	if err := l.lowerValue(e.Right); err != nil {
		return err
	}
	l.emit(Simple(binaryOpcodes[e.Op]))
	return nil
}

// lowerLogical short-circuits: the right operand only runs when the left
// one does not decide the result.
func (l *funcLowerer) lowerLogical(e *ast.Binary) error {
	n := l.nextLabel()
	if err := l.lowerValue(e.Left); err != nil {
		return err
	}
	if e.Op == ast.OpAnd {
		rhs := l.newBlock(label("and_rhs", n))
		short := l.newBlock(label("and_false", n))
		end := l.newBlock(label("and_end", n))
		l.emit(JumpIfFalse(short.Label))

		l.start(rhs)
		if err := l.lowerValue(e.Right); err != nil {
			return err
		}
		l.emit(Jump(end.Label))

		l.start(short)
		l.emit(PushBool(false))
		l.emit(Jump(end.Label))
		l.start(end)
		return nil
	}

	short := l.newBlock(label("or_true", n))
	rhs := l.newBlock(label("or_rhs", n))
	end := l.newBlock(label("or_end", n))
	l.emit(JumpIfFalse(rhs.Label))

	l.start(short)
	l.emit(PushBool(true))
	l.emit(Jump(end.Label))

	l.start(rhs)
	if err := l.lowerValue(e.Right); err != nil {
		return err
	}
	l.emit(Jump(end.Label))
	l.start(end)
	return nil
}

func (l *funcLowerer) lowerCall(e *ast.Call) error {
	callee, ok := e.Callee.(*ast.Ident)
	if !ok {
		return l.errorf(e.Callee, "callee must be a function name")
	}
	if _, local := l.scope.lookup(callee.Name); local {
		return l.errorf(e.Callee, "'%s' is a local value; only declared functions can be called", callee.Name)
	}
	for _, arg := range e.Args {
		if err := l.lowerValue(arg); err != nil {
			return err
		}
	}
	l.emit(Call(callee.Name, len(e.Args)))
	return nil
}

// lowerIf emits the condition and a jump-if-false into the current block,
// then then_N, else_N and end_N. Both branches jump to end_N unless they
// already left the function; when both did, end_N is dropped.
func (l *funcLowerer) lowerIf(e *ast.If) error {
	n := l.nextLabel()
	thenB := l.newBlock(label("then", n))
	elseB := l.newBlock(label("else", n))
	endB := l.newBlock(label("end", n))

	if err := l.lowerValue(e.Cond); err != nil {
		return err
	}
	l.emit(JumpIfFalse(elseB.Label))
	value := e.Else != nil && l.yields(e)

	l.start(thenB)
	if err := l.lowerBlock(e.Then); err != nil {
		return err
	}
	if !value && l.yields(e.Then) {
		l.emit(Pop())
	}
	thenDone := l.cur.Terminated()
	l.emit(Jump(endB.Label))

	l.start(elseB)
	if e.Else != nil {
		if err := l.lowerExpr(e.Else); err != nil {
			return err
		}
		if !value && l.yields(e.Else) {
			l.emit(Pop())
		}
	}
	elseDone := l.cur.Terminated()
	l.emit(Jump(endB.Label))

	if thenDone && elseDone {
		return nil
	}
	l.start(endB)
	return nil
}
