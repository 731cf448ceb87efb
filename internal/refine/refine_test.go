package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/state"
)

func lit(n int64) *ast.Lit { return &ast.Lit{Value: ast.IntervalLit{Lo: n, Hi: n}} }

func TestTestLessEqRefinesInterval(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInterval(ast.IntervalLit{Lo: -5, Hi: 5}))
	out := Test(d, s, &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)})
	assert.Equal(t, "[-5, 0]", out.Get(d, "x").String())
}

func TestTestNotLessEqRefinesOtherBranch(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInterval(ast.IntervalLit{Lo: -5, Hi: 5}))
	cond := &ast.Not{Operand: &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)}}
	out := Test(d, s, cond)
	assert.Equal(t, "[1, 5]", out.Get(d, "x").String())
}

func TestTestFalseIsBottom(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	out := Test(d, s, &ast.False{})
	assert.True(t, out.IsBottom())
}

func TestTestEqualUnreachable(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	out := Test(d, s, &ast.Equal{Left: &ast.Var{Name: "x"}, Right: lit(6)})
	assert.True(t, out.IsBottom())
}

func TestTestAndConjoinsRefinements(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInterval(ast.IntervalLit{Lo: -10, Hi: 10}))
	cond := &ast.And{
		Left:  &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(5)},
		Right: &ast.Not{Operand: &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)}},
	}
	out := Test(d, s, cond)
	assert.Equal(t, "[1, 5]", out.Get(d, "x").String())
}

func TestIncludesCriticalOpsDetectsDuplicateRead(t *testing.T) {
	// x <= 0 and x++ <= 0: x is both read plainly and inc/dec'd.
	cond := &ast.And{
		Left:  &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)},
		Right: &ast.LessEq{Left: &ast.PostOp{Op: ast.Inc, Name: "x"}, Right: lit(0)},
	}
	assert.True(t, includesCriticalOps(cond))
}

func TestIncludesCriticalOpsAllowsPlainTest(t *testing.T) {
	cond := &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)}
	assert.False(t, includesCriticalOps(cond))
}

func TestTestPostIncAppliesAfterRefinement(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(0))
	// x++ <= 0 reads the old value (0, satisfies <=0) then increments.
	out := Test(d, s, &ast.LessEq{Left: &ast.PostOp{Op: ast.Inc, Name: "x"}, Right: lit(0)})
	assert.Equal(t, "1", out.Get(d, "x").String())
}

// x is read plainly in the left conjunct and inc/dec'd in the right, so this
// falls back to testDumb — which must still apply the PostOp's side effect,
// not just pass the state through unrefined.
func TestTestDumbFallbackStillAppliesPostInc(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(0))
	cond := &ast.And{
		Left:  &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)},
		Right: &ast.LessEq{Left: &ast.PostOp{Op: ast.Inc, Name: "x"}, Right: lit(5)},
	}
	assert.True(t, includesCriticalOps(cond))
	out := Test(d, s, cond)
	assert.Equal(t, "1", out.Get(d, "x").String())
}

// The same check under a Not, to cover testDumb's Not case recursing into
// its operand instead of skipping it.
func TestTestDumbFallbackAppliesPostIncUnderNot(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(0))
	cond := &ast.And{
		Left: &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: lit(0)},
		Right: &ast.Not{
			Operand: &ast.LessEq{Left: &ast.PostOp{Op: ast.Inc, Name: "x"}, Right: lit(-5)},
		},
	}
	assert.True(t, includesCriticalOps(cond))
	out := Test(d, s, cond)
	assert.Equal(t, "1", out.Get(d, "x").String())
}
