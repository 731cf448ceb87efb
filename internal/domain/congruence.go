package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/xint"
)

// CongruenceElement is ⊥, or a ℤ + b (a ≥ 0): the set of integers
// congruent to b modulo a. a=0 is the singleton {b}; a=1 is ⊤.
type CongruenceElement struct {
	Bot  bool
	A, B int64
}

func (e CongruenceElement) IsBottom() bool { return e.Bot }
func (e CongruenceElement) IsTop() bool    { return !e.Bot && e.A == 1 }

func (e CongruenceElement) Equal(other Element) bool {
	o, ok := other.(CongruenceElement)
	if !ok {
		return false
	}
	if e.Bot || o.Bot {
		return e.Bot == o.Bot
	}
	if e.A == 0 || o.A == 0 {
		return e.A == o.A && e.B == o.B
	}
	return e.A == o.A && ((e.B-o.B)%e.A+e.A)%e.A == 0
}

func (e CongruenceElement) String() string {
	if e.Bot {
		return "⊥"
	}
	return fmt.Sprintf("%dℤ+%d", e.A, e.B)
}

// Congruence is the a·ℤ+b domain.
type Congruence struct{}

func NewCongruence() *Congruence { return &Congruence{} }

func (d *Congruence) Name() string { return "cong" }

func (d *Congruence) Bottom() Element { return CongruenceElement{Bot: true} }
func (d *Congruence) Top() Element    { return CongruenceElement{A: 1, B: 0} }

func (d *Congruence) Lub(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot {
		return b
	}
	if b.Bot {
		return a
	}
	diff := a.B - b.B
	if diff < 0 {
		diff = -diff
	}
	g := xint.GCD(xint.GCD(a.A, b.A), diff)
	return CongruenceElement{A: g, B: a.B}
}

// Glb solves the two congruences via the extended-Euclidean / CRT method;
// returns ⊥ when the constraints are incompatible.
func (d *Congruence) Glb(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot || b.Bot {
		return CongruenceElement{Bot: true}
	}
	if b.A == 0 {
		// Keep a singleton on the left, where the CRT step needs no
		// inverse modulo 0.
		a, b = b, a
	}
	g, _, _ := xint.ExtendedEuclid(a.A, b.A)
	if g == 0 {
		if a.B == b.B {
			return CongruenceElement{A: 0, B: a.B}
		}
		return CongruenceElement{Bot: true}
	}
	if g < 0 {
		g = -g
	}
	if mod(b.B-a.B, g) != 0 {
		return CongruenceElement{Bot: true}
	}
	m1 := a.A / g
	m2 := b.A / g
	bDiff := b.B - a.B
	lcm := m1 * m2 * g
	inv, ok := xint.ModInverse(m1, m2)
	if !ok {
		return CongruenceElement{Bot: true}
	}
	solution := a.B + a.A*(mod(bDiff/g*inv, m2))
	if lcm == 0 {
		return CongruenceElement{A: 0, B: solution}
	}
	return CongruenceElement{A: lcm, B: mod(solution, lcm)}
}

func mod(a, m int64) int64 {
	if m == 0 {
		return a
	}
	r := a % m
	if r < 0 {
		r += absI64(m)
	}
	return r
}

func absI64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (d *Congruence) Widening(x, y Element) Element  { return d.Lub(x, y) }
func (d *Congruence) Narrowing(x, y Element) Element {
	a := x.(CongruenceElement)
	if !a.Bot && a.A == 1 {
		return y
	}
	return x
}

func (d *Congruence) Add(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot || b.Bot {
		return CongruenceElement{Bot: true}
	}
	return CongruenceElement{A: xint.GCD(a.A, b.A), B: a.B + b.B}
}

func (d *Congruence) Sub(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot || b.Bot {
		return CongruenceElement{Bot: true}
	}
	return CongruenceElement{A: xint.GCD(a.A, b.A), B: a.B - b.B}
}

func (d *Congruence) Mul(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot || b.Bot {
		return CongruenceElement{Bot: true}
	}
	g := xint.GCD(xint.GCD(a.A*b.A, a.A*b.B), a.B*b.A)
	return CongruenceElement{A: g, B: a.B * b.B}
}

// Div is only sound when the divisor is a non-zero constant (a=0,b≠0);
// otherwise it conservatively returns ⊤.
func (d *Congruence) Div(x, y Element) Element {
	a, b := x.(CongruenceElement), y.(CongruenceElement)
	if a.Bot || b.Bot {
		return CongruenceElement{Bot: true}
	}
	if b.A == 0 && b.B == 0 {
		return CongruenceElement{Bot: true}
	}
	if b.A == 0 && b.B != 0 && a.A%b.B == 0 {
		return CongruenceElement{A: a.A / absI64(b.B), B: a.B / b.B}
	}
	return d.Top().(CongruenceElement)
}

func (d *Congruence) AbstractOperator(op ast.Operator, x, y Element) Element {
	switch op {
	case ast.Add:
		return d.Add(x, y)
	case ast.Sub:
		return d.Sub(x, y)
	case ast.Mul:
		return d.Mul(x, y)
	default:
		return d.Div(x, y)
	}
}

func (d *Congruence) BackwardAbstractOperator(op ast.Operator, x, y, result Element) (Element, Element) {
	switch op {
	case ast.Add:
		return d.Glb(x, d.Sub(result, y)), d.Glb(y, d.Sub(result, x))
	case ast.Sub:
		return d.Glb(x, d.Add(result, y)), d.Glb(y, d.Sub(x, result))
	default:
		// Mul/Div residues aren't invertible in general for this
		// domain without risking unsoundness; leave unrefined.
		return x, y
	}
}

func (d *Congruence) FromInt(n int64) Element {
	return CongruenceElement{A: 0, B: n}
}

func (d *Congruence) FromInterval(lit ast.IntervalLit) Element {
	if lit.Lo == lit.Hi {
		return CongruenceElement{A: 0, B: lit.Lo}
	}
	return d.Top()
}

// FromString parses "<a>Z+<b>", "bot", or "top".
func (d *Congruence) FromString(s string) (Element, error) {
	s = strings.TrimSpace(s)
	if s == "bot" || s == "⊥" {
		return CongruenceElement{Bot: true}, nil
	}
	if s == "top" || s == "⊤" {
		return d.Top(), nil
	}
	idx := strings.IndexAny(s, "zZℤ")
	if idx < 0 {
		return nil, malformedLiteral("cong", s, `"<a>Z+<b>"`)
	}
	aPart, rest := s[:idx], s[idx+1:]
	plusIdx := strings.Index(rest, "+")
	if plusIdx < 0 {
		return nil, malformedLiteral("cong", s, `"<a>Z+<b>"`)
	}
	bPart := rest[plusIdx+1:]
	a, err := strconv.ParseInt(strings.TrimSpace(aPart), 10, 64)
	if err != nil {
		return nil, malformedLiteral("cong", s, `"<a>Z+<b>"`)
	}
	b, err := strconv.ParseInt(strings.TrimSpace(bPart), 10, 64)
	if err != nil {
		return nil, malformedLiteral("cong", s, `"<a>Z+<b>"`)
	}
	return CongruenceElement{A: a, B: b}, nil
}

func (d *Congruence) SetConfig(string) error { return nil }

func (d *Congruence) Zero() Element { return CongruenceElement{A: 0, B: 0} }

// NonZero, NonPositive, Positive: congruence classes can't express an
// open-ended order constraint, so these soundly widen to Top.
func (d *Congruence) NonZero() Element     { return d.Top() }
func (d *Congruence) NonPositive() Element { return d.Top() }
func (d *Congruence) Positive() Element    { return d.Top() }
