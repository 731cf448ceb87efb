package domain

import "github.com/whileabs/whileabs/internal/ast"

// SignKind enumerates the five-element sign lattice.
type SignKind int

const (
	SignBottom SignKind = iota
	SignNegative
	SignZero
	SignPositive
	SignTop
)

// SignElement is one value of the Sign domain: ⊥, −, 0, +, ⊤.
type SignElement struct{ Kind SignKind }

func (s SignElement) IsBottom() bool { return s.Kind == SignBottom }
func (s SignElement) IsTop() bool    { return s.Kind == SignTop }

func (s SignElement) Equal(other Element) bool {
	o, ok := other.(SignElement)
	return ok && o.Kind == s.Kind
}

func (s SignElement) String() string {
	switch s.Kind {
	case SignBottom:
		return "⊥"
	case SignNegative:
		return "-"
	case SignZero:
		return "0"
	case SignPositive:
		return "+"
	default:
		return "⊤"
	}
}

// Sign is the classic 5-point sign domain.
type Sign struct{}

func NewSign() *Sign { return &Sign{} }

func (s *Sign) Name() string { return "sign" }

func (s *Sign) Bottom() Element { return SignElement{SignBottom} }
func (s *Sign) Top() Element    { return SignElement{SignTop} }

func (s *Sign) Lub(x, y Element) Element {
	a, b := x.(SignElement), y.(SignElement)
	switch {
	case a.Kind == SignBottom:
		return b
	case b.Kind == SignBottom:
		return a
	case a.Kind == b.Kind:
		return a
	default:
		return SignElement{SignTop}
	}
}

func (s *Sign) Glb(x, y Element) Element {
	a, b := x.(SignElement), y.(SignElement)
	switch {
	case a.Kind == SignBottom || b.Kind == SignBottom:
		return SignElement{SignBottom}
	case a.Kind == SignTop:
		return b
	case b.Kind == SignTop:
		return a
	case a.Kind == b.Kind:
		return a
	default:
		return SignElement{SignBottom}
	}
}

// Widening and Narrowing are the defaults (lub / first operand): Sign has
// finite height so plain lub already terminates ascending chains.
func (s *Sign) Widening(x, y Element) Element  { return s.Lub(x, y) }
func (s *Sign) Narrowing(x, y Element) Element { return x }

func signNegate(k SignKind) SignKind {
	switch k {
	case SignNegative:
		return SignPositive
	case SignPositive:
		return SignNegative
	default:
		return k
	}
}

func (s *Sign) Add(x, y Element) Element {
	a, b := x.(SignElement), y.(SignElement)
	if a.Kind == SignBottom || b.Kind == SignBottom {
		return SignElement{SignBottom}
	}
	if a.Kind == SignZero {
		return b
	}
	if b.Kind == SignZero {
		return a
	}
	if a.Kind == SignTop || b.Kind == SignTop {
		return SignElement{SignTop}
	}
	if a.Kind == b.Kind {
		return a
	}
	return SignElement{SignTop}
}

func (s *Sign) Sub(x, y Element) Element {
	b := y.(SignElement)
	return s.Add(x, SignElement{signNegate(b.Kind)})
}

func (s *Sign) Mul(x, y Element) Element {
	a, b := x.(SignElement), y.(SignElement)
	if a.Kind == SignBottom || b.Kind == SignBottom {
		return SignElement{SignBottom}
	}
	if a.Kind == SignZero || b.Kind == SignZero {
		return SignElement{SignZero}
	}
	if a.Kind == SignTop || b.Kind == SignTop {
		return SignElement{SignTop}
	}
	if a.Kind == b.Kind {
		return SignElement{SignPositive}
	}
	return SignElement{SignNegative}
}

func (s *Sign) Div(x, y Element) Element {
	a, b := x.(SignElement), y.(SignElement)
	if a.Kind == SignBottom || b.Kind == SignBottom {
		return SignElement{SignBottom}
	}
	if b.Kind == SignZero {
		return SignElement{SignBottom}
	}
	if a.Kind == SignZero {
		if b.Kind == SignTop {
			return SignElement{SignTop}
		}
		return SignElement{SignZero}
	}
	if a.Kind == SignTop || b.Kind == SignTop {
		return SignElement{SignTop}
	}
	if a.Kind == b.Kind {
		return SignElement{SignPositive}
	}
	return SignElement{SignNegative}
}

func (s *Sign) AbstractOperator(op ast.Operator, x, y Element) Element {
	switch op {
	case ast.Add:
		return s.Add(x, y)
	case ast.Sub:
		return s.Sub(x, y)
	case ast.Mul:
		return s.Mul(x, y)
	default:
		return s.Div(x, y)
	}
}

// BackwardAbstractOperator applies the spec's default formulas: for Add,
// x' = x ⊓ (result - y), y' = y ⊓ (result - x); Sub analogously via the
// inverse operator. Mul refines only when a factor is exactly Zero, and Div
// is not refined, since inflating the result by [-1,1] already gives Top in
// Sign, which can't represent a precise truncation residue.
func (s *Sign) BackwardAbstractOperator(op ast.Operator, x, y, result Element) (Element, Element) {
	switch op {
	case ast.Add:
		xp := s.Glb(x, s.Sub(result, y))
		yp := s.Glb(y, s.Sub(result, x))
		return xp, yp
	case ast.Sub:
		xp := s.Glb(x, s.Add(result, y))
		yp := s.Glb(y, s.Sub(x, result))
		return xp, yp
	case ast.Mul:
		// Division would refine further but Sign can't express a
		// sound non-zero-safe division contract here without Top;
		// only refine when a factor is exactly Zero: the product is then
		// Zero, so a result that excludes Zero leaves both operands Bottom.
		if x.(SignElement).Kind == SignZero || y.(SignElement).Kind == SignZero {
			if s.Glb(result, SignElement{SignZero}).IsBottom() {
				return s.Bottom(), s.Bottom()
			}
		}
		return x, y
	default: // Div
		return x, y
	}
}

func (s *Sign) FromInt(n int64) Element {
	switch {
	case n < 0:
		return SignElement{SignNegative}
	case n > 0:
		return SignElement{SignPositive}
	default:
		return SignElement{SignZero}
	}
}

func (s *Sign) FromInterval(lit ast.IntervalLit) Element {
	if lit.Lo == lit.Hi {
		return s.FromInt(lit.Lo)
	}
	if lit.Hi <= 0 && lit.Lo < 0 {
		return SignElement{SignNegative}
	}
	if lit.Lo >= 0 && lit.Hi > 0 {
		return SignElement{SignPositive}
	}
	return SignElement{SignTop}
}

func (s *Sign) FromString(str string) (Element, error) {
	switch str {
	case "bot", "⊥":
		return SignElement{SignBottom}, nil
	case "-":
		return SignElement{SignNegative}, nil
	case "0":
		return SignElement{SignZero}, nil
	case "+":
		return SignElement{SignPositive}, nil
	case "top", "⊤":
		return SignElement{SignTop}, nil
	default:
		return nil, malformedLiteral("sign", str, "one of -, 0, +, top, bot")
	}
}

func (s *Sign) SetConfig(string) error { return nil }

func (s *Sign) Zero() Element        { return SignElement{SignZero} }
func (s *Sign) NonZero() Element     { return SignElement{SignTop} }
func (s *Sign) NonPositive() Element { return s.Lub(SignElement{SignNegative}, SignElement{SignZero}) }
func (s *Sign) Positive() Element    { return SignElement{SignPositive} }
