package types

import (
	"fmt"

	"grok/internal/source"
)

// Constraint asserts Left and Right must be the same type. Span is the
// expression that produced it.
type Constraint struct {
	Left  Type
	Right Type
	Span  source.Span
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s ~ %s", c.Left, c.Right)
}

// Supply hands out fresh type variables named t1, t2, ...
type Supply struct {
	next int
}

func (s *Supply) Fresh() *Variable {
	s.next++
	return &Variable{Name: fmt.Sprintf("t%d", s.next)}
}
