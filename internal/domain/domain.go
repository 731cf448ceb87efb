// Package domain implements the numeric abstract domains the analyzer runs
// over: Sign, ExtendedSign, Interval (bounded) and Congruence. Every domain
// is a complete lattice with arithmetic, widening/narrowing, and the
// forward/backward abstract operators the evaluator and refiner dispatch
// through — generalized from the interval/infinity lattice shape in
// go-tools' value-range analysis to this signed, four-domain family.
package domain

import "github.com/whileabs/whileabs/internal/ast"

// Element is one value of some domain's lattice. Concrete domains each
// define their own Element implementation; callers never construct one
// directly — they go through the owning Domain's constructors so mixing
// elements across domains is a programmer error caught by a failed type
// assertion, not a silent miscomputation.
type Element interface {
	IsBottom() bool
	IsTop() bool
	Equal(Element) bool
	String() string
}

// Domain is the capability set every concrete numeric domain implements:
// lattice operations, arithmetic, widening/narrowing, and conversions.
// Implementations are value-configured via SetConfig (e.g. bounded-interval
// limits) rather than through package-level mutable state.
type Domain interface {
	Name() string

	Bottom() Element
	Top() Element

	// Lub, Glb are the lattice join/meet. Both bottom and top are
	// absorbing for glb/lub respectively.
	Lub(x, y Element) Element
	Glb(x, y Element) Element

	// Widening and Narrowing stabilize ascending/descending iterate
	// sequences. Default behavior (lub / first operand) is overridden by
	// domains with infinite height.
	Widening(x, y Element) Element
	Narrowing(x, y Element) Element

	// Add, Sub, Mul, Div are the four abstract arithmetic operators.
	Add(x, y Element) Element
	Sub(x, y Element) Element
	Mul(x, y Element) Element
	Div(x, y Element) Element

	// AbstractOperator dispatches to Add/Sub/Mul/Div by op.
	AbstractOperator(op ast.Operator, x, y Element) Element

	// BackwardAbstractOperator refines (x, y) given that op(x,y) must lie
	// within result, returning (x', y') with x' ⊑ x, y' ⊑ y.
	BackwardAbstractOperator(op ast.Operator, x, y, result Element) (Element, Element)

	FromInt(n int64) Element
	FromInterval(lit ast.IntervalLit) Element
	FromString(s string) (Element, error)

	// Zero, NonZero, NonPositive, Positive are the four comparator target
	// sets the backward test refiner pushes through a condition's
	// evaluation tree: a == 0, a != 0, a <= 0, a > 0 respectively. Domains
	// that cannot express an open-ended bound (e.g. congruence classes)
	// soundly return Top for NonZero/NonPositive/Positive.
	Zero() Element
	NonZero() Element
	NonPositive() Element
	Positive() Element

	// SetConfig configures domain-specific parameters (e.g. bounded
	// interval limits) from a CLI-supplied string. Domains with no
	// configuration accept any input, including the empty string, as a no-op.
	SetConfig(s string) error
}

// LessEq is the partial order ⊑ derived from Lub: x ⊑ y iff lub(x,y) = y.
// Every domain gets this for free since Lub is always defined.
func LessEq(d Domain, x, y Element) bool {
	return d.Lub(x, y).Equal(y)
}

// ByName resolves a domain by its CLI name: sign, extended-sign,
// bounded-interval, cong.
func ByName(name string) (Domain, bool) {
	switch name {
	case "sign":
		return NewSign(), true
	case "extended-sign":
		return NewExtendedSign(), true
	case "bounded-interval":
		return NewInterval(), true
	case "cong":
		return NewCongruence(), true
	default:
		return nil, false
	}
}
