// Package refine implements the backward abstract semantics of a Boolean
// test: given a condition and a state, compute the tightest sound state in
// which the condition can hold. This is the subtle half of the abstract
// semantics — forward evaluation (internal/eval) only ever widens
// information, but a test can genuinely narrow it (e.g. `x <= 0` on
// x:[-5,5] refines to x:[-5,0]).
//
// The approach: build an evaluation tree caching the abstract value at every
// node, then push the condition's target set down through the tree via each
// domain's BackwardAbstractOperator, iterating to a fixpoint because
// refining one leaf can tighten a shared subexpression's other leaf. Tests
// whose variables can't be safely shared this way (because an inc/dec
// target also appears elsewhere in the condition) fall back to a
// conservative evaluation that never refines, only detects unreachability.
package refine

import (
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/eval"
	"github.com/whileabs/whileabs/internal/state"
)

// Test computes the state in which b holds, starting from s.
func Test(d domain.Domain, s *state.State, b ast.Bexpr) *state.State {
	if includesCriticalOps(b) {
		return testDumb(d, s, b)
	}

	cur := evalPreB(d, s.Clone(), b)
	next := testH(d, cur.Clone(), b, false)
	for !state.Equal(d, next, cur) {
		cur = state.Glb(d, cur, next)
		next = testH(d, cur.Clone(), b, false)
	}
	return evalPostB(d, cur, b)
}

// testDumb is the fallback used when a variable is both read plainly and
// touched by an inc/dec within the same test: it still detects statically
// unreachable branches (False, or an Equal test whose two sides provably
// can't agree) but otherwise passes the state through unrefined.
func testDumb(d domain.Domain, s *state.State, b ast.Bexpr) *state.State {
	switch n := b.(type) {
	case *ast.True:
		return s
	case *ast.False:
		return state.Bottom()
	case *ast.Equal:
		cur := s.Clone()
		v1 := eval.Aexpr(d, cur, n.Left)
		v2 := eval.Aexpr(d, cur, n.Right)
		if d.Glb(v1, v2).IsBottom() {
			return state.Bottom()
		}
		return cur
	case *ast.LessEq:
		cur := s.Clone()
		eval.Aexpr(d, cur, n.Left)
		eval.Aexpr(d, cur, n.Right)
		return cur
	case *ast.Not:
		return testDumb(d, s, n.Operand)
	case *ast.And:
		s = testDumb(d, s, n.Left)
		return testDumb(d, s, n.Right)
	default:
		panic("refine: unknown boolean expression node")
	}
}

func testH(d domain.Domain, s *state.State, b ast.Bexpr, negated bool) *state.State {
	switch n := b.(type) {
	case *ast.True:
		if negated {
			return state.Bottom()
		}
		return s
	case *ast.False:
		if negated {
			return s
		}
		return state.Bottom()

	case *ast.Equal:
		target := d.Zero()
		if negated {
			target = d.NonZero()
		}
		return advancedTest(d, s, n.Left, n.Right, target)

	case *ast.LessEq:
		target := d.NonPositive()
		if negated {
			target = d.Positive()
		}
		return advancedTest(d, s, n.Left, n.Right, target)

	case *ast.And:
		s1 := testH(d, s.Clone(), n.Left, negated)
		s2 := testH(d, s.Clone(), n.Right, negated)
		if !negated {
			return state.Glb(d, s1, s2)
		}
		return state.Lub(d, s1, s2)

	case *ast.Not:
		return testH(d, s, n.Operand, !negated)

	default:
		panic("refine: unknown boolean expression node")
	}
}

// advancedTest rewrites `a1 op a2` to the single expression it must equal
// the target set: a1 itself when a2 is the literal 0, else a1 - a2.
func advancedTest(d domain.Domain, s *state.State, a1, a2 ast.Aexpr, target domain.Element) *state.State {
	var expr ast.Aexpr = &ast.BinOp{Op: ast.Sub, Left: a1, Right: a2}
	if lit, ok := a2.(*ast.Lit); ok && lit.Value.Lo == 0 && lit.Value.Hi == 0 {
		expr = a1
	}
	tree := buildTree(d, s, expr)
	return refineTree(d, s, tree, target)
}

// evalTree mirrors the evaluation-tree shape of eval.Aexpr, but read-only:
// it caches the current abstract value at every node so the refiner can
// push a tightened target down to each leaf without recomputing siblings.
type evalTree struct {
	value domain.Element
	kind  treeKind
	name  string // set for leaves bound to a variable
	op    ast.Operator
	left  *evalTree
	right *evalTree
}

type treeKind int

const (
	leafNum treeKind = iota
	leafVar
	binOp
)

func buildTree(d domain.Domain, s *state.State, a ast.Aexpr) *evalTree {
	switch n := a.(type) {
	case *ast.Lit:
		return &evalTree{kind: leafNum, value: d.FromInterval(n.Value)}
	case *ast.Var:
		return &evalTree{kind: leafVar, name: n.Name, value: s.Get(d, n.Name)}
	case *ast.PreOp:
		return &evalTree{kind: leafVar, name: n.Name, value: s.Get(d, n.Name)}
	case *ast.PostOp:
		return &evalTree{kind: leafVar, name: n.Name, value: s.Get(d, n.Name)}
	case *ast.BinOp:
		l := buildTree(d, s, n.Left)
		r := buildTree(d, s, n.Right)
		return &evalTree{kind: binOp, op: n.Op, left: l, right: r, value: d.AbstractOperator(n.Op, l.value, r.value)}
	default:
		panic("refine: unknown arithmetic expression node")
	}
}

// refineTree narrows every variable leaf's binding in s to its glb with the
// value the tree's backward propagation assigns that leaf.
func refineTree(d domain.Domain, s *state.State, t *evalTree, target domain.Element) *state.State {
	switch t.kind {
	case leafNum:
		return s
	case leafVar:
		s.Set(t.name, d.Glb(s.Get(d, t.name), target))
		return s
	default: // binOp
		lTarget, rTarget := d.BackwardAbstractOperator(t.op, t.left.value, t.right.value, target)
		s = refineTree(d, s, t.left, lTarget)
		s = refineTree(d, s, t.right, rTarget)
		return s
	}
}

// evalPreB/evalPreA apply the side effects of every PreOp (++x, --x) inside
// b before the refinement loop runs, since a pre-increment's new value is
// what the test actually reads.
func evalPreB(d domain.Domain, s *state.State, b ast.Bexpr) *state.State {
	switch n := b.(type) {
	case *ast.Equal:
		s = evalPreA(d, s, n.Left)
		return evalPreA(d, s, n.Right)
	case *ast.LessEq:
		s = evalPreA(d, s, n.Left)
		return evalPreA(d, s, n.Right)
	case *ast.Not:
		return evalPreB(d, s, n.Operand)
	case *ast.And:
		s = evalPreB(d, s, n.Left)
		return evalPreB(d, s, n.Right)
	default: // True, False
		return s
	}
}

func evalPreA(d domain.Domain, s *state.State, a ast.Aexpr) *state.State {
	switch n := a.(type) {
	case *ast.PreOp:
		eval.Aexpr(d, s, n)
		return s
	case *ast.BinOp:
		s = evalPreA(d, s, n.Left)
		return evalPreA(d, s, n.Right)
	default:
		return s
	}
}

// evalPostB/evalPostA mirror evalPreB/evalPreA for PostOp (x++, x--), whose
// side effect is applied only after the test has been fully refined.
func evalPostB(d domain.Domain, s *state.State, b ast.Bexpr) *state.State {
	switch n := b.(type) {
	case *ast.Equal:
		s = evalPostA(d, s, n.Left)
		return evalPostA(d, s, n.Right)
	case *ast.LessEq:
		s = evalPostA(d, s, n.Left)
		return evalPostA(d, s, n.Right)
	case *ast.Not:
		return evalPostB(d, s, n.Operand)
	case *ast.And:
		s = evalPostB(d, s, n.Left)
		return evalPostB(d, s, n.Right)
	default:
		return s
	}
}

func evalPostA(d domain.Domain, s *state.State, a ast.Aexpr) *state.State {
	switch n := a.(type) {
	case *ast.PostOp:
		eval.Aexpr(d, s, n)
		return s
	case *ast.BinOp:
		s = evalPostA(d, s, n.Left)
		return evalPostA(d, s, n.Right)
	default:
		return s
	}
}

// includesCriticalOps reports whether b mixes a plain variable read with an
// inc/dec of the same variable, or inc/decs the same variable twice — cases
// where the evaluation tree's cached leaf values would go stale as soon as
// refinement (or the pre/post pass) mutates the variable, making the
// advanced refinement unsound.
func includesCriticalOps(b ast.Bexpr) bool {
	_, _, err := checkNoDupB(b)
	return err != nil
}

type varSet map[string]struct{}

func (s varSet) add(name string) { s[name] = struct{}{} }

func checkNoDupB(b ast.Bexpr) (varSet, varSet, error) {
	switch n := b.(type) {
	case *ast.True, *ast.False:
		return varSet{}, varSet{}, nil
	case *ast.Equal:
		return mergeAexprs(n.Left, n.Right)
	case *ast.LessEq:
		return mergeAexprs(n.Left, n.Right)
	case *ast.Not:
		return checkNoDupB(n.Operand)
	case *ast.And:
		v1, op1, err := checkNoDupB(n.Left)
		if err != nil {
			return nil, nil, err
		}
		v2, op2, err := checkNoDupB(n.Right)
		if err != nil {
			return nil, nil, err
		}
		return merge(v1, op1, v2, op2)
	default:
		panic("refine: unknown boolean expression node")
	}
}

func mergeAexprs(a1, a2 ast.Aexpr) (varSet, varSet, error) {
	v1, op1, err := checkNoDupA(a1)
	if err != nil {
		return nil, nil, err
	}
	v2, op2, err := checkNoDupA(a2)
	if err != nil {
		return nil, nil, err
	}
	return merge(v1, op1, v2, op2)
}

func checkNoDupA(a ast.Aexpr) (varSet, varSet, error) {
	switch n := a.(type) {
	case *ast.Lit:
		return varSet{}, varSet{}, nil
	case *ast.Var:
		v := varSet{}
		v.add(n.Name)
		return v, varSet{}, nil
	case *ast.PreOp:
		op := varSet{}
		op.add(n.Name)
		return varSet{}, op, nil
	case *ast.PostOp:
		op := varSet{}
		op.add(n.Name)
		return varSet{}, op, nil
	case *ast.BinOp:
		v1, op1, err := checkNoDupA(n.Left)
		if err != nil {
			return nil, nil, err
		}
		v2, op2, err := checkNoDupA(n.Right)
		if err != nil {
			return nil, nil, err
		}
		return merge(v1, op1, v2, op2)
	default:
		panic("refine: unknown arithmetic expression node")
	}
}

// merge unions the two (vars, incDecVars) pairs, failing if the same
// variable is inc/dec'd on both sides, or if an inc/dec'd variable also
// appears as a plain read anywhere in the expression.
func merge(v1, op1, v2, op2 varSet) (varSet, varSet, error) {
	for name := range op1 {
		if _, dup := op2[name]; dup {
			return nil, nil, dupErr(name)
		}
	}
	vars := varSet{}
	ops := varSet{}
	for name := range v1 {
		vars.add(name)
	}
	for name := range v2 {
		vars.add(name)
	}
	for name := range op1 {
		ops.add(name)
	}
	for name := range op2 {
		ops.add(name)
	}
	for name := range ops {
		if _, dup := vars[name]; dup {
			return nil, nil, dupErr(name)
		}
	}
	return vars, ops, nil
}

type dupVarError string

func (e dupVarError) Error() string { return "variable " + string(e) + " appears with a duplicate inc/dec" }

func dupErr(name string) error { return dupVarError(name) }
