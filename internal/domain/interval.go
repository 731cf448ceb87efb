package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/xint"
)

// IntervalElement is ⊥, or a range [lo, hi] of extended integers with
// lo ⊑ hi; the full range [-∞,+∞] plays the role of ⊤ — there is no
// separate top tag, matching how go-vrp's Interval type folds the "unknown"
// case into an unbounded range rather than a third variant.
type IntervalElement struct {
	Bot    bool
	Lo, Hi xint.Int
}

func (e IntervalElement) IsBottom() bool { return e.Bot }
func (e IntervalElement) IsTop() bool {
	return !e.Bot && e.Lo.IsNegInf() && e.Hi.IsPosInf()
}

func (e IntervalElement) Equal(other Element) bool {
	o, ok := other.(IntervalElement)
	if !ok {
		return false
	}
	if e.Bot || o.Bot {
		return e.Bot == o.Bot
	}
	return e.Lo.Equal(o.Lo) && e.Hi.Equal(o.Hi)
}

func (e IntervalElement) String() string {
	if e.Bot {
		return "⊥"
	}
	if e.Lo.Equal(e.Hi) {
		return e.Lo.String()
	}
	return fmt.Sprintf("[%s, %s]", e.Lo, e.Hi)
}

// Interval is the bounded-interval domain. lower/upper are the optional
// configured thresholds [L,U]: an endpoint computed outside them snaps to
// the corresponding infinity, forcing genuine widening instead of tracking
// ever-larger finite bounds.
type Interval struct {
	lower, upper xint.Int
}

// NewInterval returns the interval domain with no configured bounds (so no
// endpoint ever snaps — the domain behaves as plain [-∞,+∞]-bounded
// arithmetic until SetConfig narrows it).
func NewInterval() *Interval {
	return &Interval{lower: xint.NegInfinity(), upper: xint.PosInfinity()}
}

func (d *Interval) Name() string { return "bounded-interval" }

// rng constructs a normalized Range element, snapping lo below the
// configured lower threshold to -∞ and hi above the upper threshold to +∞,
// and collapsing to ⊥ if lo > hi.
func (d *Interval) rng(lo, hi xint.Int) Element {
	if lo.Greater(hi) {
		return IntervalElement{Bot: true}
	}
	if lo.Less(d.lower) {
		lo = xint.NegInfinity()
	}
	if hi.Greater(d.upper) {
		hi = xint.PosInfinity()
	}
	return IntervalElement{Lo: lo, Hi: hi}
}

func (d *Interval) Bottom() Element { return IntervalElement{Bot: true} }
func (d *Interval) Top() Element    { return IntervalElement{Lo: xint.NegInfinity(), Hi: xint.PosInfinity()} }

func (d *Interval) Lub(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot {
		return b
	}
	if b.Bot {
		return a
	}
	return d.rng(a.Lo.Min(b.Lo), a.Hi.Max(b.Hi))
}

func (d *Interval) Glb(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	return d.rng(a.Lo.Max(b.Lo), a.Hi.Min(b.Hi))
}

// Widening keeps lo if it did not decrease (else -∞), keeps hi if it did
// not increase (else +∞) — the classic interval widening operator.
func (d *Interval) Widening(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot {
		return b
	}
	if b.Bot {
		return a
	}
	lo := xint.NegInfinity()
	if !b.Lo.Less(a.Lo) {
		lo = a.Lo
	}
	hi := xint.PosInfinity()
	if !b.Hi.Greater(a.Hi) {
		hi = a.Hi
	}
	return IntervalElement{Lo: lo, Hi: hi}
}

// Narrowing replaces an infinite bound of x with the corresponding (tighter)
// bound of y.
func (d *Interval) Narrowing(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	lo := a.Lo
	if lo.IsNegInf() {
		lo = b.Lo
	}
	hi := a.Hi
	if hi.IsPosInf() {
		hi = b.Hi
	}
	return d.rng(lo, hi)
}

func (d *Interval) Add(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	return d.rng(a.Lo.Add(b.Lo), a.Hi.Add(b.Hi))
}

func (d *Interval) Sub(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	return d.rng(a.Lo.Sub(b.Hi), a.Hi.Sub(b.Lo))
}

func (d *Interval) Mul(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	corners := []xint.Int{
		a.Lo.Mul(b.Lo), a.Lo.Mul(b.Hi),
		a.Hi.Mul(b.Lo), a.Hi.Mul(b.Hi),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	return d.rng(lo, hi)
}

// Div follows the reference three-way split: divisor strictly positive,
// divisor strictly negative, or divisor straddling/containing zero (split
// into the positive and negative parts and join the two quotients).
func (d *Interval) Div(x, y Element) Element {
	a, b := x.(IntervalElement), y.(IntervalElement)
	if a.Bot || b.Bot {
		return IntervalElement{Bot: true}
	}
	if b.Lo.Equal(xint.Num(0)) && b.Hi.Equal(xint.Num(0)) {
		return IntervalElement{Bot: true}
	}
	switch {
	case b.Lo.Cmp(xint.Num(1)) >= 0: // divisor strictly positive
		return d.divCorners(a, b)
	case b.Hi.Cmp(xint.Num(-1)) <= 0: // divisor strictly negative
		return d.divCorners(a, b)
	default:
		// Divisor straddles zero: split at the boundary and join.
		posPart := d.Glb(b, IntervalElement{Lo: xint.Num(1), Hi: xint.PosInfinity()})
		negPart := d.Glb(b, IntervalElement{Lo: xint.NegInfinity(), Hi: xint.Num(-1)})
		result := Element(IntervalElement{Bot: true})
		if !posPart.(IntervalElement).Bot {
			result = d.Lub(result, d.divCorners(a, posPart.(IntervalElement)))
		}
		if !negPart.(IntervalElement).Bot {
			result = d.Lub(result, d.divCorners(a, negPart.(IntervalElement)))
		}
		return result
	}
}

func (d *Interval) divCorners(a, b IntervalElement) Element {
	corners := []xint.Int{
		a.Lo.Div(b.Lo), a.Lo.Div(b.Hi),
		a.Hi.Div(b.Lo), a.Hi.Div(b.Hi),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	return d.rng(lo, hi)
}

func (d *Interval) AbstractOperator(op ast.Operator, x, y Element) Element {
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

// BackwardAbstractOperator implements the spec's default formulas: for Add,
// x' = x ⊓ (result - y), y' = y ⊓ (result - x); Sub mirrors it; Mul inverts
// through Div; Div inflates the target by ⊔[-1,1] first to conservatively
// absorb truncation before inverting through Mul.
func (d *Interval) BackwardAbstractOperator(op ast.Operator, x, y, result Element) (Element, Element) {
	switch op {
	case ast.Add:
		return d.Glb(x, d.Sub(result, y)), d.Glb(y, d.Sub(result, x))
	case ast.Sub:
		return d.Glb(x, d.Add(result, y)), d.Glb(y, d.Sub(x, result))
	case ast.Mul:
		xp := x
		yp := y
		if !d.containsZero(y) {
			xp = d.Glb(x, d.Div(result, y))
		}
		if !d.containsZero(x) {
			yp = d.Glb(y, d.Div(result, x))
		}
		return xp, yp
	default: // Div
		inflated := d.Lub(result, IntervalElement{Lo: xint.Num(-1), Hi: xint.Num(1)})
		yp := y
		if !d.containsZero(y) {
			yp = d.Glb(y, d.Div(x, inflated))
		}
		xp := d.Glb(x, d.Mul(inflated, y))
		return xp, yp
	}
}

func (d *Interval) containsZero(e Element) bool {
	r := e.(IntervalElement)
	return !r.Bot && !r.Lo.Greater(xint.Num(0)) && !r.Hi.Less(xint.Num(0))
}

func (d *Interval) FromInt(n int64) Element {
	return d.rng(xint.Num(n), xint.Num(n))
}

func (d *Interval) FromInterval(lit ast.IntervalLit) Element {
	return d.rng(xint.Num(lit.Lo), xint.Num(lit.Hi))
}

func (d *Interval) FromString(s string) (Element, error) {
	s = strings.TrimSpace(s)
	if s == "bot" || s == "⊥" {
		return IntervalElement{Bot: true}, nil
	}
	if s == "top" || s == "⊤" {
		return d.Top(), nil
	}
	lo, hi, err := parseBounds(s)
	if err != nil {
		return nil, &ParseError{Domain: "bounded-interval", Input: s, Want: "an integer, [lo,hi], or top/bot"}
	}
	return d.rng(lo, hi), nil
}

// SetConfig parses "[L,U]" (or "[-inf,U]" / "[L,+inf]") and configures the
// thresholds beyond which computed bounds snap to infinity.
func (d *Interval) SetConfig(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lo, hi, err := parseBounds(s)
	if err != nil {
		return &ParseError{Domain: "bounded-interval config", Input: s, Want: "[L,U]"}
	}
	d.lower, d.upper = lo, hi
	return nil
}

func parseBounds(s string) (xint.Int, xint.Int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return xint.Int{}, xint.Int{}, err
		}
		return xint.Num(n), xint.Num(n), nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return xint.Int{}, xint.Int{}, fmt.Errorf("expected lo,hi")
	}
	lo, err := parseBound(parts[0])
	if err != nil {
		return xint.Int{}, xint.Int{}, err
	}
	hi, err := parseBound(parts[1])
	if err != nil {
		return xint.Int{}, xint.Int{}, err
	}
	return lo, hi, nil
}

func (d *Interval) Zero() Element { return d.rng(xint.Num(0), xint.Num(0)) }

func (d *Interval) NonZero() Element {
	return d.Lub(
		IntervalElement{Lo: xint.NegInfinity(), Hi: xint.Num(-1)},
		IntervalElement{Lo: xint.Num(1), Hi: xint.PosInfinity()},
	)
}

func (d *Interval) NonPositive() Element { return d.rng(xint.NegInfinity(), xint.Num(0)) }
func (d *Interval) Positive() Element    { return d.rng(xint.Num(1), xint.PosInfinity()) }

func parseBound(s string) (xint.Int, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "-inf", "-infinity", "-∞":
		return xint.NegInfinity(), nil
	case "+inf", "inf", "infinity", "+∞":
		return xint.PosInfinity(), nil
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return xint.Int{}, err
		}
		return xint.Num(n), nil
	}
}
