package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/state"
)

func lit(n int64) *ast.Lit { return &ast.Lit{Value: ast.IntervalLit{Lo: n, Hi: n}} }

func TestAexprLiteralAndVar(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	assert.Equal(t, "5", Aexpr(d, s, &ast.Var{Name: "x"}).String())
	assert.Equal(t, "3", Aexpr(d, s, lit(3)).String())
}

func TestAexprBinOpLeftToRight(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	sum := Aexpr(d, s, &ast.BinOp{Op: ast.Add, Left: &ast.Var{Name: "x"}, Right: lit(2)})
	assert.Equal(t, "7", sum.String())
}

func TestAexprPostIncReadsOldWritesNew(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	v := Aexpr(d, s, &ast.PostOp{Op: ast.Inc, Name: "x"})
	assert.Equal(t, "5", v.String())
	assert.Equal(t, "6", s.Get(d, "x").String())
}

func TestAexprPreDecReadsAndWritesNew(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	v := Aexpr(d, s, &ast.PreOp{Op: ast.Dec, Name: "x"})
	assert.Equal(t, "4", v.String())
	assert.Equal(t, "4", s.Get(d, "x").String())
}

func TestAexprEvaluationOrderSharedVariable(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(5))
	// x + x++ : left x reads 5 (pre-increment), right x++ reads 5 then sets x to 6.
	sum := Aexpr(d, s, &ast.BinOp{
		Op:    ast.Add,
		Left:  &ast.Var{Name: "x"},
		Right: &ast.PostOp{Op: ast.Inc, Name: "x"},
	})
	assert.Equal(t, "10", sum.String())
	assert.Equal(t, "6", s.Get(d, "x").String())
}

func TestApplyAssignDoesNotMutateInput(t *testing.T) {
	d := domain.NewInterval()
	s := state.Top()
	s.Set("x", d.FromInt(1))
	out := ApplyAssign(d, s, "x", lit(9))
	assert.Equal(t, "1", s.Get(d, "x").String())
	assert.Equal(t, "9", out.Get(d, "x").String())
}
