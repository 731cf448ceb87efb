// Package xint implements the extended integers Z∞ = Z ∪ {-∞, +∞} that the
// numeric abstract domains are built from: a total order plus the few
// arithmetic operators the analyzer needs, with the handful of undefined
// cases (∞-∞, 0/0) turned into panics instead of silently picked values.
package xint

import (
	"fmt"
)

// Kind distinguishes a finite value from the two infinities.
type Kind int

const (
	Finite Kind = iota
	NegInf
	PosInf
)

// Int is one element of Z∞. The zero value is the finite integer 0.
type Int struct {
	kind Kind
	n    int64
}

// Num wraps a finite value.
func Num(n int64) Int { return Int{kind: Finite, n: n} }

// NegInfinity is -∞.
func NegInfinity() Int { return Int{kind: NegInf} }

// PosInfinity is +∞.
func PosInfinity() Int { return Int{kind: PosInf} }

func (x Int) IsFinite() bool { return x.kind == Finite }
func (x Int) IsPosInf() bool { return x.kind == PosInf }
func (x Int) IsNegInf() bool { return x.kind == NegInf }

// Value returns the finite value of x. Callers must check IsFinite first.
func (x Int) Value() int64 {
	if x.kind != Finite {
		panic("xint: Value called on an infinite Int")
	}
	return x.n
}

func sign(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Cmp returns -1, 0, +1 as x is less than, equal to, or greater than y.
func (x Int) Cmp(y Int) int {
	switch {
	case x.kind == y.kind && x.kind != Finite:
		return 0
	case x.kind == PosInf || y.kind == NegInf:
		if x.kind == y.kind {
			return 0
		}
		return 1
	case x.kind == NegInf || y.kind == PosInf:
		return -1
	default:
		switch {
		case x.n < y.n:
			return -1
		case x.n > y.n:
			return 1
		default:
			return 0
		}
	}
}

func (x Int) Less(y Int) bool    { return x.Cmp(y) < 0 }
func (x Int) LessEq(y Int) bool  { return x.Cmp(y) <= 0 }
func (x Int) Greater(y Int) bool { return x.Cmp(y) > 0 }
func (x Int) Equal(y Int) bool   { return x.Cmp(y) == 0 }

func (x Int) Min(y Int) Int {
	if x.Less(y) {
		return x
	}
	return y
}

func (x Int) Max(y Int) Int {
	if x.Greater(y) {
		return x
	}
	return y
}

// Add implements extended addition; ∞ + (-∞) is undefined and panics.
func (x Int) Add(y Int) Int {
	switch {
	case (x.kind == PosInf && y.kind == NegInf) || (x.kind == NegInf && y.kind == PosInf):
		panic("xint: +infinity - infinity is undefined")
	case x.kind == PosInf || y.kind == PosInf:
		return PosInfinity()
	case x.kind == NegInf || y.kind == NegInf:
		return NegInfinity()
	default:
		return Num(x.n + y.n)
	}
}

// Sub implements extended subtraction; ∞ - ∞ is undefined and panics.
func (x Int) Sub(y Int) Int {
	switch {
	case (x.kind == PosInf && y.kind == PosInf) || (x.kind == NegInf && y.kind == NegInf):
		panic("xint: infinity - infinity is undefined")
	case x.kind == PosInf || y.kind == NegInf:
		return PosInfinity()
	case x.kind == NegInf || y.kind == PosInf:
		return NegInfinity()
	default:
		return Num(x.n - y.n)
	}
}

func infTimesFinite(n int64) Int {
	switch sign(n) {
	case -1:
		return NegInfinity()
	case 1:
		return PosInfinity()
	default:
		return Num(0)
	}
}

// Mul implements extended multiplication; infinity times zero is zero.
func (x Int) Mul(y Int) Int {
	switch {
	case x.kind != Finite && y.kind != Finite:
		if x.kind == y.kind {
			return PosInfinity()
		}
		return NegInfinity()
	case x.kind != Finite:
		r := infTimesFinite(y.n)
		if x.kind == NegInf {
			return r.Negate()
		}
		return r
	case y.kind != Finite:
		r := infTimesFinite(x.n)
		if y.kind == NegInf {
			return r.Negate()
		}
		return r
	default:
		return Num(x.n * y.n)
	}
}

// Negate returns -x.
func (x Int) Negate() Int {
	switch x.kind {
	case PosInf:
		return NegInfinity()
	case NegInf:
		return PosInfinity()
	default:
		return Num(-x.n)
	}
}

// Div implements extended division. Both infinities on one side is
// undefined and panics; n/0 for finite nonzero n is sign(n)*∞; 0/0 panics.
func (x Int) Div(y Int) Int {
	switch {
	case x.kind != Finite && y.kind != Finite:
		panic("xint: infinity / infinity is undefined")
	case x.kind != Finite:
		// Infinity divided by a finite value (including zero) stays
		// infinite: only 0/0 and ∞/∞ are treated as indeterminate.
		// Zero divisors are bucketed with positive, matching the
		// reference analyzer's bound arithmetic.
		divisorNonNegative := y.n >= 0
		if x.kind == PosInf == divisorNonNegative {
			return PosInfinity()
		}
		return NegInfinity()
	case y.kind != Finite:
		r := infTimesFinite(x.n)
		if y.kind == NegInf {
			return r.Negate()
		}
		return r
	case y.n == 0:
		if x.n == 0 {
			panic("xint: 0/0 is undefined")
		}
		return infTimesFinite(x.n)
	default:
		return Num(x.n / y.n)
	}
}

func (x Int) String() string {
	switch x.kind {
	case PosInf:
		return "+∞"
	case NegInf:
		return "-∞"
	default:
		return fmt.Sprintf("%d", x.n)
	}
}

// GCD computes the GCD of two finite integers, extended with
// gcd(0, n) = gcd(n, 0) = |n|, the convention the congruence domain relies on.
func GCD(a, b int64) int64 {
	a, b = absI64(a), absI64(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absI64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// ExtendedEuclid returns (gcd, s, t) such that a*s + b*t = gcd, using the
// iterative extended Euclidean algorithm (the same shape the congruence
// domain's glb depends on for its CRT solve).
func ExtendedEuclid(a, b int64) (gcd, s, t int64) {
	oldR, r := a, b
	oldS, s1 := int64(1), int64(0)
	oldT, t1 := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s1 = s1, oldS-q*s1
		oldT, t1 = t1, oldT-q*t1
	}
	return oldR, oldS, oldT
}

// ModInverse returns the inverse of x modulo n, if it exists.
func ModInverse(x, n int64) (int64, bool) {
	g, s, _ := ExtendedEuclid(x, n)
	if g != 1 && g != -1 {
		return 0, false
	}
	r := s % n
	if r < 0 {
		r += n
	}
	return r, true
}
