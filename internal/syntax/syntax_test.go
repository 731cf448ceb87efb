package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/fixpoint"
	"github.com/whileabs/whileabs/internal/interp"
	"github.com/whileabs/whileabs/internal/state"
)

func analyze(t *testing.T, src string, d domain.Domain, strat fixpoint.Strategy) fixpoint.States {
	t.Helper()
	stmt, err := Parse("test.while", src)
	require.NoError(t, err)
	prog := cfg.Lower(stmt)
	return fixpoint.Analyze(prog, d, state.Top(), strat)
}

func TestParseCountingLoopMatchesWhileForm(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 0; while x <= 1000 do x := x + 10;", d, fixpoint.WideningAndNarrowing)
	prog := cfg.Lower(mustParse(t, "x := 0; while x <= 1000 do x := x + 10;"))

	assert.Equal(t, "[0, 1000]", states[prog.WideningPoints[0]].Get(d, "x").String())
	assert.Equal(t, "[1001, 1010]", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseForLoopDesugarsToSameResultAsWhile(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "for (x := 0; x <= 1000; x := x + 10) skip;", d, fixpoint.WideningAndNarrowing)
	prog := cfg.Lower(mustParse(t, "for (x := 0; x <= 1000; x := x + 10) skip;"))

	assert.Equal(t, "[0, 1000]", states[prog.WideningPoints[0]].Get(d, "x").String())
	assert.Equal(t, "[1001, 1010]", states[prog.ExitLabel()].Get(d, "x").String())
}

// repeat always runs its body once before the loop's own test is reached;
// starting one step back (-10, so the unconditional first run lands
// exactly on 0) makes the loop head see the same values, in the same
// order, as the plain `while` form above.
func TestParseRepeatUntilRunsBodyAtLeastOnce(t *testing.T) {
	const src = "x := -10; repeat x := x + 10; until x > 1000;"
	d := domain.NewInterval()
	states := analyze(t, src, d, fixpoint.WideningAndNarrowing)
	prog := cfg.Lower(mustParse(t, src))

	assert.Equal(t, "[0, 1000]", states[prog.WideningPoints[0]].Get(d, "x").String())
	assert.Equal(t, "[1001, 1010]", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseArithmeticPrecedence(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 1 + 2 * 3;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 1 + 2 * 3;"))
	assert.Equal(t, "7", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseUnaryMinusAndParens(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := -(2 + 3) * 2;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := -(2 + 3) * 2;"))
	assert.Equal(t, "-10", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseCompoundAssignment(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 5; x += 3; x *= 2;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 5; x += 3; x *= 2;"))
	assert.Equal(t, "16", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseBarePostIncrementStatement(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 5; x++;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 5; x++;"))
	assert.Equal(t, "6", states[prog.ExitLabel()].Get(d, "x").String())
}

// not binds tighter than and: `not x == 1 and x == 0` is `(not (x==1)) and (x==0)`.
func TestParseBooleanPrecedenceNotBeforeAnd(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 0; if not x == 1 and x == 0 then x := 1 else x := 2;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 0; if not x == 1 and x == 0 then x := 1 else x := 2;"))
	assert.Equal(t, "1", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseOrDesugarsViaDeMorgan(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 5; if x == 1 or x == 5 then x := 1 else x := 2;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 5; if x == 1 or x == 5 then x := 1 else x := 2;"))
	assert.Equal(t, "1", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestParseComparatorDesugaring(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := 5; y := 10; if x < y and y >= x and x != y and y > x then x := 1 else x := 2;", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := 5; y := 10; if x < y and y >= x and x != y and y > x then x := 1 else x := 2;"))
	assert.Equal(t, "1", states[prog.ExitLabel()].Get(d, "x").String())
}

// A comparison that embeds a post-increment must desugar without sharing the
// increment's AST node across two subexpressions, or the increment runs
// twice per evaluation instead of once.
func TestLessThanDesugaringIncrementsOnlyOnce(t *testing.T) {
	stmt := mustParse(t, "x := 0; n := 0; while x++ < 3 do n := n + 1;")
	out, err := interp.Stmt(interp.State{}, stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out["x"])
	assert.Equal(t, int64(3), out["n"])
}

func TestGreaterEqDesugaringIncrementsOnlyOnce(t *testing.T) {
	stmt := mustParse(t, "x := 0; n := 0; while not x++ >= 3 do n := n + 1;")
	out, err := interp.Stmt(interp.State{}, stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out["x"])
	assert.Equal(t, int64(3), out["n"])
}

func TestParseIntervalLiteral(t *testing.T) {
	d := domain.NewInterval()
	states := analyze(t, "x := [-5, 5];", d, fixpoint.Simple)
	prog := cfg.Lower(mustParse(t, "x := [-5, 5];"))
	assert.Equal(t, "[-5, 5]", states[prog.ExitLabel()].Get(d, "x").String())
}

func TestPrettyCSTRoundTripsToTheSameAnalysis(t *testing.T) {
	const src = "x := 5; y := 10; if x < y and y >= x and x != y and y > x then x := 1 else x := 2;"
	cst, err := ParseCST("test.while", src)
	require.NoError(t, err)

	pretty := cst.Pretty()

	d := domain.NewInterval()
	before := analyze(t, src, d, fixpoint.Simple)
	after := analyze(t, pretty, d, fixpoint.Simple)

	beforeProg := cfg.Lower(mustParse(t, src))
	afterProg := cfg.Lower(mustParse(t, pretty))

	assert.Equal(t,
		before[beforeProg.ExitLabel()].Get(d, "x").String(),
		after[afterProg.ExitLabel()].Get(d, "x").String())
}

func TestParseMalformedProgramReturnsError(t *testing.T) {
	_, err := Parse("bad.while", "x := ;")
	assert.Error(t, err)
}

func mustParse(t *testing.T, src string) ast.Stmt {
	t.Helper()
	stmt, err := Parse("test.while", src)
	require.NoError(t, err)
	return stmt
}
