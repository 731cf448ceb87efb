package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whileabs/whileabs/internal/ast"
)

func litA(n int64) *ast.Lit { return &ast.Lit{Value: ast.IntervalLit{Lo: n, Hi: n}} }

// x := 0; while x <= 1000 do x := x + 10;
func countingLoop() *ast.Compose {
	return &ast.Compose{
		Left: &ast.Assign{Name: "x", Value: litA(0)},
		Right: &ast.While{
			Cond: &ast.LessEq{Left: &ast.Var{Name: "x"}, Right: litA(1000)},
			Body: &ast.Assign{Name: "x", Value: &ast.BinOp{Op: ast.Add, Left: &ast.Var{Name: "x"}, Right: litA(10)}},
		},
	}
}

func TestStmtCountingLoopReachesExactExitValue(t *testing.T) {
	out, err := Stmt(State{}, countingLoop())
	require.NoError(t, err)
	assert.Equal(t, int64(1010), out["x"])
}

func TestStmtDoesNotMutateInputState(t *testing.T) {
	in := State{"x": 1}
	_, err := Stmt(in, &ast.Assign{Name: "x", Value: litA(99)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), in["x"])
}

func TestStmtIfThenElsePicksBranchByCondition(t *testing.T) {
	prog := &ast.IfThenElse{
		Cond: &ast.Equal{Left: &ast.Var{Name: "x"}, Right: litA(0)},
		Then: &ast.Assign{Name: "y", Value: litA(1)},
		Else: &ast.Assign{Name: "y", Value: litA(2)},
	}
	out, err := Stmt(State{"x": 0}, prog)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out["y"])

	out, err = Stmt(State{"x": 5}, prog)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out["y"])
}

func TestStmtPrePostOpEvaluationOrderMatchesLeftToRight(t *testing.T) {
	// x + x++  reads x on the left, then x++ yields the old value and
	// bumps x: 5 + 5 = 10, and x ends at 6.
	prog := &ast.Assign{
		Name: "y",
		Value: &ast.BinOp{
			Op:    ast.Add,
			Left:  &ast.Var{Name: "x"},
			Right: &ast.PostOp{Op: ast.Inc, Name: "x"},
		},
	}
	out, err := Stmt(State{"x": 5}, prog)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out["y"])
	assert.Equal(t, int64(6), out["x"])
}

func TestStmtPreOpIncrementsBeforeReading(t *testing.T) {
	prog := &ast.Assign{Name: "y", Value: &ast.PreOp{Op: ast.Inc, Name: "x"}}
	out, err := Stmt(State{"x": 5}, prog)
	require.NoError(t, err)
	assert.Equal(t, int64(6), out["y"])
	assert.Equal(t, int64(6), out["x"])
}

func TestStmtUndefinedVariableReadReturnsRuntimeError(t *testing.T) {
	_, err := Stmt(State{}, &ast.Assign{Name: "y", Value: &ast.Var{Name: "x"}})
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestStmtDivisionByZeroReturnsRuntimeError(t *testing.T) {
	prog := &ast.Assign{
		Name:  "y",
		Value: &ast.BinOp{Op: ast.Div, Left: litA(1), Right: litA(0)},
	}
	_, err := Stmt(State{}, prog)
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestStmtWhileFalseNeverRunsBody(t *testing.T) {
	prog := &ast.While{Cond: &ast.False{}, Body: &ast.Assign{Name: "x", Value: litA(1)}}
	out, err := Stmt(State{}, prog)
	require.NoError(t, err)
	_, ok := out["x"]
	assert.False(t, ok)
}
