package domain

import "github.com/whileabs/whileabs/internal/ast"

// ExtendedSignElement is a bitmap over {negative, zero, positive}: the
// 2^3 = 8-element lattice (⊥ = no bit set, ⊤ = all three).
type ExtendedSignElement struct {
	Neg, Zero, Pos bool
}

func (e ExtendedSignElement) IsBottom() bool { return !e.Neg && !e.Zero && !e.Pos }
func (e ExtendedSignElement) IsTop() bool    { return e.Neg && e.Zero && e.Pos }

func (e ExtendedSignElement) Equal(other Element) bool {
	o, ok := other.(ExtendedSignElement)
	return ok && o == e
}

func (e ExtendedSignElement) String() string {
	switch {
	case e.IsBottom():
		return "⊥"
	case e.IsTop():
		return "⊤"
	case e.Neg && !e.Zero && !e.Pos:
		return "<0"
	case !e.Neg && e.Zero && !e.Pos:
		return "0"
	case !e.Neg && !e.Zero && e.Pos:
		return ">0"
	case e.Neg && e.Zero && !e.Pos:
		return "<=0"
	case !e.Neg && e.Zero && e.Pos:
		return ">=0"
	default: // Neg && Pos, !Zero
		return "!=0"
	}
}

// ExtendedSign is the 8-element sign-bitmap domain.
type ExtendedSign struct{}

func NewExtendedSign() *ExtendedSign { return &ExtendedSign{} }

func (d *ExtendedSign) Name() string { return "extended-sign" }

func (d *ExtendedSign) Bottom() Element { return ExtendedSignElement{} }
func (d *ExtendedSign) Top() Element    { return ExtendedSignElement{true, true, true} }

func (d *ExtendedSign) Lub(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	return ExtendedSignElement{a.Neg || b.Neg, a.Zero || b.Zero, a.Pos || b.Pos}
}

func (d *ExtendedSign) Glb(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	return ExtendedSignElement{a.Neg && b.Neg, a.Zero && b.Zero, a.Pos && b.Pos}
}

func (d *ExtendedSign) Widening(x, y Element) Element  { return d.Lub(x, y) }
func (d *ExtendedSign) Narrowing(x, y Element) Element { return x }

// triSign is one of the three elementary signs, used to enumerate the
// bitmap's set members when combining two elements arithmetically.
type triSign int

const (
	triNeg triSign = iota
	triZero
	triPos
)

func bits(e ExtendedSignElement) []triSign {
	var out []triSign
	if e.Neg {
		out = append(out, triNeg)
	}
	if e.Zero {
		out = append(out, triZero)
	}
	if e.Pos {
		out = append(out, triPos)
	}
	return out
}

func fromBits(bs ...triSign) ExtendedSignElement {
	var e ExtendedSignElement
	for _, b := range bs {
		switch b {
		case triNeg:
			e.Neg = true
		case triZero:
			e.Zero = true
		case triPos:
			e.Pos = true
		}
	}
	return e
}

func negTri(t triSign) triSign {
	switch t {
	case triNeg:
		return triPos
	case triPos:
		return triNeg
	default:
		return triZero
	}
}

func addTri(a, b triSign) []triSign {
	switch {
	case a == triNeg && b == triNeg:
		return []triSign{triNeg}
	case a == triZero && b == triZero:
		return []triSign{triZero}
	case a == triPos && b == triPos:
		return []triSign{triPos}
	case (a == triNeg && b == triZero) || (a == triZero && b == triNeg):
		return []triSign{triNeg}
	case (a == triZero && b == triPos) || (a == triPos && b == triZero):
		return []triSign{triPos}
	default: // one neg, one pos: could land anywhere
		return []triSign{triNeg, triZero, triPos}
	}
}

func mulTri(a, b triSign) []triSign {
	if a == triZero || b == triZero {
		return []triSign{triZero}
	}
	if a == b {
		return []triSign{triPos}
	}
	return []triSign{triNeg}
}

func divTri(a, b triSign) []triSign {
	if b == triZero {
		return nil
	}
	if a == triZero {
		return []triSign{triZero}
	}
	if a == b {
		return []triSign{triPos}
	}
	return []triSign{triNeg}
}

func combine(x, y ExtendedSignElement, op func(a, b triSign) []triSign) ExtendedSignElement {
	var result ExtendedSignElement
	for _, a := range bits(x) {
		for _, b := range bits(y) {
			result = (&ExtendedSign{}).Lub(result, fromBits(op(a, b)...)).(ExtendedSignElement)
		}
	}
	return result
}

func (d *ExtendedSign) Add(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	if a.IsBottom() || b.IsBottom() {
		return ExtendedSignElement{}
	}
	return combine(a, b, addTri)
}

func (d *ExtendedSign) Sub(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	if a.IsBottom() || b.IsBottom() {
		return ExtendedSignElement{}
	}
	negated := ExtendedSignElement{Neg: b.Pos, Zero: b.Zero, Pos: b.Neg}
	return combine(a, negated, addTri)
}

func (d *ExtendedSign) Mul(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	if a.IsBottom() || b.IsBottom() {
		return ExtendedSignElement{}
	}
	return combine(a, b, mulTri)
}

func (d *ExtendedSign) Div(x, y Element) Element {
	a, b := x.(ExtendedSignElement), y.(ExtendedSignElement)
	if a.IsBottom() || b.IsBottom() {
		return ExtendedSignElement{}
	}
	if !b.Neg && !b.Pos && b.Zero {
		return ExtendedSignElement{} // divisor is exactly {0}
	}
	return combine(a, b, divTri)
}

func (d *ExtendedSign) AbstractOperator(op ast.Operator, x, y Element) Element {
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

func (d *ExtendedSign) BackwardAbstractOperator(op ast.Operator, x, y, result Element) (Element, Element) {
	switch op {
	case ast.Add:
		return d.Glb(x, d.Sub(result, y)), d.Glb(y, d.Sub(result, x))
	case ast.Sub:
		return d.Glb(x, d.Add(result, y)), d.Glb(y, d.Sub(x, result))
	case ast.Mul:
		// The bitmap can't express a sound tighter residue in general;
		// only the zero-factor case refines: a factor that is exactly {0}
		// makes the product {0}, so a result excluding 0 leaves no operands.
		ax, ay := x.(ExtendedSignElement), y.(ExtendedSignElement)
		xZero := ax.Zero && !ax.Neg && !ax.Pos
		yZero := ay.Zero && !ay.Neg && !ay.Pos
		if (xZero || yZero) && d.Glb(result, ExtendedSignElement{Zero: true}).IsBottom() {
			return ExtendedSignElement{}, ExtendedSignElement{}
		}
		return x, y
	default:
		// Div is not refined.
		return x, y
	}
}

func (d *ExtendedSign) FromInt(n int64) Element {
	switch {
	case n < 0:
		return ExtendedSignElement{Neg: true}
	case n > 0:
		return ExtendedSignElement{Pos: true}
	default:
		return ExtendedSignElement{Zero: true}
	}
}

func (d *ExtendedSign) FromInterval(lit ast.IntervalLit) Element {
	var e ExtendedSignElement
	if lit.Lo < 0 {
		e.Neg = true
	}
	if lit.Lo <= 0 && lit.Hi >= 0 {
		e.Zero = true
	}
	if lit.Hi > 0 {
		e.Pos = true
	}
	return e
}

func (d *ExtendedSign) FromString(s string) (Element, error) {
	switch s {
	case "bot", "⊥":
		return ExtendedSignElement{}, nil
	case "-":
		return ExtendedSignElement{Neg: true}, nil
	case "0":
		return ExtendedSignElement{Zero: true}, nil
	case "+":
		return ExtendedSignElement{Pos: true}, nil
	case "<=0", "-0":
		return ExtendedSignElement{Neg: true, Zero: true}, nil
	case ">=0", "0+":
		return ExtendedSignElement{Zero: true, Pos: true}, nil
	case "!=0", "-+":
		return ExtendedSignElement{Neg: true, Pos: true}, nil
	case "top", "⊤":
		return ExtendedSignElement{true, true, true}, nil
	default:
		return nil, malformedLiteral("extended-sign", s, "one of -, 0, +, <=0, >=0, !=0, top, bot")
	}
}

func (d *ExtendedSign) SetConfig(string) error { return nil }

func (d *ExtendedSign) Zero() Element        { return ExtendedSignElement{Zero: true} }
func (d *ExtendedSign) NonZero() Element     { return ExtendedSignElement{Neg: true, Pos: true} }
func (d *ExtendedSign) NonPositive() Element { return ExtendedSignElement{Neg: true, Zero: true} }
func (d *ExtendedSign) Positive() Element    { return ExtendedSignElement{Pos: true} }
