package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/fixpoint"
	"github.com/whileabs/whileabs/internal/state"
	"github.com/whileabs/whileabs/internal/syntax"
)

const countingLoopSrc = "x := 0; while x <= 1000 do x := x + 10;"

func TestInvariantsNamesWideningPointsInOrder(t *testing.T) {
	stmt, err := syntax.Parse("test.while", countingLoopSrc)
	require.NoError(t, err)
	prog := cfg.Lower(stmt)
	d := domain.NewInterval()
	states := fixpoint.Analyze(prog, d, state.Top(), fixpoint.WideningAndNarrowing)

	out := Invariants(prog, states, d)
	assert.Contains(t, out, "i1 (label")
	assert.Contains(t, out, "[0, 1000]")
	assert.Contains(t, out, "final (label")
	assert.Contains(t, out, "[1001, 1010]")
}

func TestPerIterationPrintsEachRound(t *testing.T) {
	stmt, err := syntax.Parse("test.while", countingLoopSrc)
	require.NoError(t, err)
	prog := cfg.Lower(stmt)
	d := domain.NewInterval()
	_, rounds := fixpoint.AnalyzeTrace(prog, d, state.Top(), fixpoint.WideningAndNarrowing)

	out := PerIteration(rounds)
	assert.Equal(t, len(rounds), strings.Count(out, "round "))
}

func TestRawASTRendersSExpression(t *testing.T) {
	out := RawAST(&ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 5, Hi: 5}}})
	assert.Equal(t, "(Assign x (Lit 5))", out)
}

func TestPrettyASTRendersSurfaceSyntax(t *testing.T) {
	stmt, err := syntax.Parse("test.while", "if x <= 0 then y := 1; else y := 2;")
	require.NoError(t, err)
	out := PrettyAST(stmt)
	assert.Contains(t, out, "if x <= 0 then")
	assert.Contains(t, out, "y := 1;")
	assert.Contains(t, out, "else")
	assert.Contains(t, out, "y := 2;")
}

func TestTokensRendersOneLinePerToken(t *testing.T) {
	out, err := Tokens("test.while", "x := 1;")
	require.NoError(t, err)
	assert.Contains(t, out, "Ident(x)@1:1")
	assert.Contains(t, out, "Integer(1)@1:6")
}

func TestRawCSTRendersGoSyntax(t *testing.T) {
	out, err := RawCST("test.while", "skip;")
	require.NoError(t, err)
	assert.Contains(t, out, "syntax.Program")
}

func TestPrettyCSTRoundTrips(t *testing.T) {
	const src = "for (x := 0; x <= 10; x := x + 1) skip;"
	out, err := PrettyCST("test.while", src)
	require.NoError(t, err)
	assert.Contains(t, out, "for (")
	assert.Contains(t, out, "skip;")
}
