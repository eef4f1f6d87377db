package ir

import (
	"grok/internal/ast"
)

// lowerBlock lowers b in a fresh variable scope. Statements after one that
// leaves the function are unreachable and skipped.
func (l *funcLowerer) lowerBlock(b *ast.Block) error {
	l.pushScope()
	defer l.popScope()

	for _, stmt := range b.Stmts {
		if l.cur.Terminated() {
			return nil
		}
		if err := l.lowerStmt(stmt); err != nil {
			return err
		}
	}
	if b.Tail == nil || l.cur.Terminated() {
		return nil
	}
	return l.lowerExpr(b.Tail)
}

func (l *funcLowerer) lowerStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Let:
		if err := l.lowerExpr(s.Value); err != nil {
			return err
		}
		name := l.declare(s.Name)
		if l.yields(s.Value) {
			l.emit(StoreVar(name))
		}
	case *ast.ExprStmt:
		if err := l.lowerExpr(s.X); err != nil {
			return err
		}
		if l.yields(s.X) {
			l.emit(Pop())
		}
	case *ast.While:
		return l.lowerWhile(s)
	case *ast.Return:
		if s.Value == nil {
			l.emit(Return(false))
			return nil
		}
		if err := l.lowerExpr(s.Value); err != nil {
			return err
		}
		l.emit(Return(l.returnsValue && l.yields(s.Value)))
	default:
		return l.errorf(s, "cannot lower %T", s)
	}
	return nil
}

func (l *funcLowerer) lowerWhile(s *ast.While) error {
	n := l.nextLabel()
	cond := l.newBlock(label("while_cond", n))
	body := l.newBlock(label("while_body", n))
	end := l.newBlock(label("while_end", n))

	l.emit(Jump(cond.Label))

	l.start(cond)
	if err := l.lowerValue(s.Cond); err != nil {
		return err
	}
	l.emit(JumpIfFalse(end.Label))

	l.start(body)
	if err := l.lowerBlock(s.Body); err != nil {
		return err
	}
	if l.yields(s.Body) {
		l.emit(Pop())
	}
	l.emit(Jump(cond.Label))

	l.start(end)
	return nil
}
