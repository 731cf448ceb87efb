// Package eval implements the forward abstract semantics: expression
// evaluation over a chosen domain, threading state mutation for the
// side effects of pre/post increment and decrement, and the Assign half
// of command application (Test is handled by internal/refine, since a
// sound Test needs the backward refinement machinery).
package eval

import (
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/state"
)

// Aexpr evaluates a over s in domain d, mutating s in place for the side
// effects of PreOp/PostOp. Operands are evaluated left to right, so in
// `x + x++` the left x reads the pre-increment value, the right x++ also
// yields that value, and x holds the incremented value afterwards.
func Aexpr(d domain.Domain, s *state.State, a ast.Aexpr) domain.Element {
	switch n := a.(type) {
	case *ast.Lit:
		return d.FromInterval(n.Value)

	case *ast.Var:
		return s.Get(d, n.Name)

	case *ast.PreOp:
		old := s.Get(d, n.Name)
		next := stepOp(d, old, n.Op)
		s.Set(n.Name, next)
		return next

	case *ast.PostOp:
		old := s.Get(d, n.Name)
		next := stepOp(d, old, n.Op)
		s.Set(n.Name, next)
		return old

	case *ast.BinOp:
		left := Aexpr(d, s, n.Left)
		right := Aexpr(d, s, n.Right)
		return d.AbstractOperator(n.Op, left, right)

	default:
		panic("eval: unknown arithmetic expression node")
	}
}

func stepOp(d domain.Domain, v domain.Element, op ast.PrePostOp) domain.Element {
	one := d.FromInt(1)
	if op == ast.Inc {
		return d.Add(v, one)
	}
	return d.Sub(v, one)
}

// ApplyAssign applies `x := a` to a clone of s and returns the clone, so
// callers (the fixpoint engine) never mutate an iterate still in use.
func ApplyAssign(d domain.Domain, s *state.State, name string, a ast.Aexpr) *state.State {
	out := s.Clone()
	v := Aexpr(d, out, a)
	out.Set(name, v)
	return out
}
