package xint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdering(t *testing.T) {
	assert.True(t, NegInfinity().Less(Num(-100)))
	assert.True(t, Num(100).Less(PosInfinity()))
	assert.True(t, NegInfinity().Less(PosInfinity()))
	assert.True(t, Num(1).Equal(Num(1)))
	assert.True(t, PosInfinity().Equal(PosInfinity()))
}

func TestAddPanicsOnInfMinusInf(t *testing.T) {
	assert.Panics(t, func() { PosInfinity().Add(NegInfinity()) })
	assert.Panics(t, func() { NegInfinity().Sub(NegInfinity()) })
}

func TestDivByZero(t *testing.T) {
	assert.Panics(t, func() { Num(0).Div(Num(0)) })
	assert.Equal(t, PosInfinity(), Num(5).Div(Num(0)))
	assert.Equal(t, NegInfinity(), Num(-5).Div(Num(0)))
}

func TestDivByInfinity(t *testing.T) {
	// Extended-integer division by an infinity carries the numerator's
	// sign into the infinity rather than collapsing to zero, matching
	// the reference analyzer's bound arithmetic.
	assert.Equal(t, PosInfinity(), Num(5).Div(PosInfinity()))
	assert.Equal(t, PosInfinity(), Num(-5).Div(NegInfinity()))
	assert.Equal(t, Num(0), Num(0).Div(PosInfinity()))
	assert.Panics(t, func() { PosInfinity().Div(PosInfinity()) })
}

func TestMulSignRules(t *testing.T) {
	assert.Equal(t, PosInfinity(), PosInfinity().Mul(Num(3)))
	assert.Equal(t, NegInfinity(), PosInfinity().Mul(Num(-3)))
	assert.Equal(t, Num(0), PosInfinity().Mul(Num(0)))
}

func TestGCDZeroConvention(t *testing.T) {
	assert.Equal(t, int64(7), GCD(0, 7))
	assert.Equal(t, int64(7), GCD(7, 0))
	assert.Equal(t, int64(0), GCD(0, 0))
	assert.Equal(t, int64(6), GCD(18, 24))
}

func TestExtendedEuclidBezout(t *testing.T) {
	g, s, tc := ExtendedEuclid(35, 15)
	assert.Equal(t, int64(5), g)
	assert.Equal(t, int64(5), 35*s+15*tc)
}
