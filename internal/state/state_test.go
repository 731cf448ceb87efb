package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/domain"
)

func TestGetSetBasics(t *testing.T) {
	d := domain.NewInterval()
	s := Top()
	assert.True(t, s.Get(d, "x").IsTop())
	s.Set("x", d.FromInt(5))
	assert.Equal(t, "5", s.Get(d, "x").String())
}

func TestSetBottomCollapses(t *testing.T) {
	d := domain.NewSign()
	s := Top()
	s.Set("x", d.FromInt(1))
	s.Set("y", d.Bottom())
	assert.True(t, s.IsBottom())
	assert.True(t, s.Get(d, "x").IsBottom())
}

func TestLubDropsDisjointKeys(t *testing.T) {
	d := domain.NewSign()
	s1 := Top()
	s1.Set("x", d.FromInt(1))
	s2 := Top()
	s2.Set("y", d.FromInt(-1))
	joined := Lub(d, s1, s2)
	assert.True(t, joined.Get(d, "x").IsTop())
	assert.True(t, joined.Get(d, "y").IsTop())
}

func TestLubBottomIdentity(t *testing.T) {
	d := domain.NewSign()
	s := Top()
	s.Set("x", d.FromInt(1))
	joined := Lub(d, Bottom(), s)
	assert.True(t, Equal(d, joined, s))
}

func TestGlbUnionsKeys(t *testing.T) {
	d := domain.NewSign()
	s1 := Top()
	s1.Set("x", d.FromInt(1))
	s2 := Top()
	s2.Set("y", d.FromInt(-1))
	met := Glb(d, s1, s2)
	assert.Equal(t, "+", met.Get(d, "x").String())
	assert.Equal(t, "-", met.Get(d, "y").String())
}

func TestFromStringSemicolonSyntax(t *testing.T) {
	d := domain.NewInterval()
	s, err := FromString(d, "x:5;y:[1,10]")
	require.NoError(t, err)
	assert.Equal(t, "5", s.Get(d, "x").String())
	assert.Equal(t, "[1, 10]", s.Get(d, "y").String())
}

func TestLessEqAndEqual(t *testing.T) {
	d := domain.NewInterval()
	narrow := Top()
	narrow.Set("x", d.FromInterval(ast.IntervalLit{Lo: 1, Hi: 5}))
	wide := Top()
	wide.Set("x", d.FromInterval(ast.IntervalLit{Lo: 0, Hi: 10}))
	assert.True(t, LessEq(d, narrow, wide))
	assert.False(t, LessEq(d, wide, narrow))
	assert.True(t, Equal(d, narrow, narrow))
}
