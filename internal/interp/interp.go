// Package interp is the concrete reference interpreter: it runs a desugared
// program directly over machine integers, with no abstraction at all. It
// exists for testing the abstract semantics against ground truth and for
// `whileabs run`, never for analysis itself.
package interp

import (
	"fmt"

	"github.com/whileabs/whileabs/internal/ast"
)

// RuntimeError is returned for the handful of ways a well-formed program can
// still fail to evaluate: reading a variable no assignment has reached yet,
// or dividing by zero.
type RuntimeError struct {
	Pos ast.Position
	Msg string
}

func (e *RuntimeError) Error() string {
	if e.Pos.Filename == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos.String(), e.Msg)
}

func undefinedVariable(pos ast.Position, name string) error {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf("variable %q read before assignment", name)}
}

func divisionByZero(pos ast.Position) error {
	return &RuntimeError{Pos: pos, Msg: "division by zero"}
}

// State is the concrete interpreter's variable store. The zero value is the
// empty state (every variable undefined).
type State map[string]int64

// Clone returns an independent copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Stmt runs stmt over a clone of s and returns the resulting state. It never
// mutates s.
func Stmt(s State, stmt ast.Stmt) (State, error) {
	return evalStmt(s.Clone(), stmt)
}

func evalStmt(s State, stmt ast.Stmt) (State, error) {
	switch n := stmt.(type) {
	case *ast.Assign:
		v, err := evalAexpr(s, n.Value)
		if err != nil {
			return nil, err
		}
		s[n.Name] = v
		return s, nil

	case *ast.Skip:
		return s, nil

	case *ast.Compose:
		s, err := evalStmt(s, n.Left)
		if err != nil {
			return nil, err
		}
		return evalStmt(s, n.Right)

	case *ast.IfThenElse:
		b, err := evalBexpr(s, n.Cond)
		if err != nil {
			return nil, err
		}
		if b {
			return evalStmt(s, n.Then)
		}
		return evalStmt(s, n.Else)

	case *ast.While:
		for {
			b, err := evalBexpr(s, n.Cond)
			if err != nil {
				return nil, err
			}
			if !b {
				return s, nil
			}
			s, err = evalStmt(s, n.Body)
			if err != nil {
				return nil, err
			}
		}

	default:
		panic("interp: unknown statement node")
	}
}

func evalBexpr(s State, b ast.Bexpr) (bool, error) {
	switch n := b.(type) {
	case *ast.True:
		return true, nil
	case *ast.False:
		return false, nil

	case *ast.Equal:
		l, r, err := evalPair(s, n.Left, n.Right)
		if err != nil {
			return false, err
		}
		return l == r, nil

	case *ast.LessEq:
		l, r, err := evalPair(s, n.Left, n.Right)
		if err != nil {
			return false, err
		}
		return l <= r, nil

	case *ast.Not:
		v, err := evalBexpr(s, n.Operand)
		if err != nil {
			return false, err
		}
		return !v, nil

	case *ast.And:
		l, err := evalBexpr(s, n.Left)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evalBexpr(s, n.Right)

	default:
		panic("interp: unknown boolean expression node")
	}
}

// evalPair evaluates left then right, left to right, matching evalAexpr's
// own ordering so a shared variable's pre/post-increment side effects land
// the same way they would inside a single BinOp.
func evalPair(s State, left, right ast.Aexpr) (int64, int64, error) {
	l, err := evalAexpr(s, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := evalAexpr(s, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func evalAexpr(s State, a ast.Aexpr) (int64, error) {
	switch n := a.(type) {
	case *ast.Lit:
		if n.Value.Lo != n.Value.Hi {
			return 0, &RuntimeError{Pos: n.Position, Msg: "interval literal is not a single concrete value"}
		}
		return n.Value.Lo, nil

	case *ast.Var:
		v, ok := s[n.Name]
		if !ok {
			return 0, undefinedVariable(n.Position, n.Name)
		}
		return v, nil

	case *ast.PreOp:
		old, ok := s[n.Name]
		if !ok {
			return 0, undefinedVariable(n.Position, n.Name)
		}
		next := step(old, n.Op)
		s[n.Name] = next
		return next, nil

	case *ast.PostOp:
		old, ok := s[n.Name]
		if !ok {
			return 0, undefinedVariable(n.Position, n.Name)
		}
		s[n.Name] = step(old, n.Op)
		return old, nil

	case *ast.BinOp:
		l, r, err := evalPair(s, n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case ast.Add:
			return l + r, nil
		case ast.Sub:
			return l - r, nil
		case ast.Mul:
			return l * r, nil
		case ast.Div:
			if r == 0 {
				return 0, divisionByZero(n.Position)
			}
			return l / r, nil
		default:
			panic("interp: unknown operator")
		}

	default:
		panic("interp: unknown arithmetic expression node")
	}
}

func step(v int64, op ast.PrePostOp) int64 {
	if op == ast.Inc {
		return v + 1
	}
	return v - 1
}
