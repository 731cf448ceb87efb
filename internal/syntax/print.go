package syntax

import (
	"strings"
)

// Pretty reconstructs surface source from the parsed CST, sugar preserved
// (repeat/for/compound-assign are printed back as written, not desugared).
// This is the parse/pretty-print round trip internal/report's -C flag
// drives: feeding the result back through Parse reproduces the same AST.
func (p *Program) Pretty() string {
	var b strings.Builder
	for _, s := range p.Stmts {
		writeStmt(&b, s, 0)
	}
	return b.String()
}

func writeIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeStmt(b *strings.Builder, s *Stmt, depth int) {
	writeIndent(b, depth)
	switch {
	case s.Skip != nil:
		b.WriteString("skip;\n")
	case s.AssignLik != nil:
		b.WriteString(assignLikeCore(s.AssignLik))
		b.WriteString(";\n")
	case s.Block != nil:
		b.WriteString("{\n")
		for _, inner := range s.Block.Stmts {
			writeStmt(b, inner, depth+1)
		}
		writeIndent(b, depth)
		b.WriteString("}\n")
	case s.If != nil:
		b.WriteString("if ")
		b.WriteString(bexprString(s.If.Cond))
		b.WriteString(" then\n")
		writeStmt(b, s.If.Then, depth+1)
		if s.If.Else != nil {
			writeIndent(b, depth)
			b.WriteString("else\n")
			writeStmt(b, s.If.Else, depth+1)
		}
	case s.While != nil:
		b.WriteString("while ")
		b.WriteString(bexprString(s.While.Cond))
		b.WriteString(" do\n")
		writeStmt(b, s.While.Body, depth+1)
	case s.Repeat != nil:
		b.WriteString("repeat\n")
		writeStmt(b, s.Repeat.Body, depth+1)
		writeIndent(b, depth)
		b.WriteString("until ")
		b.WriteString(bexprString(s.Repeat.Cond))
		b.WriteString(";\n")
	case s.For != nil:
		b.WriteString("for (")
		b.WriteString(assignLikeCore(s.For.Init))
		b.WriteString("; ")
		b.WriteString(bexprString(s.For.Cond))
		b.WriteString("; ")
		b.WriteString(assignLikeCore(s.For.Step))
		b.WriteString(")\n")
		writeStmt(b, s.For.Body, depth+1)
	default:
		panic("syntax: empty Stmt alternative")
	}
}

// assignLikeCore renders an AssignLike without its trailing ";" — callers
// either append one (a standalone statement) or a "; " (for's three clauses).
func assignLikeCore(a *AssignLike) string {
	if a.PreOp != nil {
		return *a.PreOp + *a.PreName
	}
	if a.Op != nil {
		return *a.Name + " " + *a.Op + " " + aexprString(a.Value)
	}
	return *a.Name + *a.PostOp
}

func bexprString(b *BExpr) string {
	parts := make([]string, 0, 1+len(b.Rest))
	parts = append(parts, andExprString(b.Left))
	for _, r := range b.Rest {
		parts = append(parts, andExprString(r))
	}
	return strings.Join(parts, " or ")
}

func andExprString(a *AndExpr) string {
	parts := make([]string, 0, 1+len(a.Rest))
	parts = append(parts, notExprString(a.Left))
	for _, r := range a.Rest {
		parts = append(parts, notExprString(r))
	}
	return strings.Join(parts, " and ")
}

func notExprString(n *NotExpr) string {
	prefix := strings.Repeat("not ", len(n.Nots))
	return prefix + bAtomString(n.Atom)
}

func bAtomString(a *BAtom) string {
	switch {
	case a.True:
		return "true"
	case a.False:
		return "false"
	default:
		return aexprString(a.Cmp.Left) + " " + a.Cmp.Op + " " + aexprString(a.Cmp.Right)
	}
}

func aexprString(a *AExpr) string {
	out := termString(a.Left)
	for _, add := range a.Rest {
		out += " " + add.Op + " " + termString(add.Right)
	}
	return out
}

func termString(t *Term) string {
	out := factorString(t.Left)
	for _, mul := range t.Rest {
		out += " " + mul.Op + " " + factorString(mul.Right)
	}
	return out
}

func factorString(f *Factor) string {
	switch {
	case f.Neg != nil:
		return "-" + factorString(f.Neg)
	case f.PreOp != nil:
		return *f.PreOp + *f.PreName
	default:
		out := primaryString(f.Primary)
		if f.PostOp != nil {
			out += *f.PostOp
		}
		return out
	}
}

func primaryString(p *Primary) string {
	switch {
	case p.Interval != nil:
		return "[" + signedIntString(p.Interval.Lo) + "," + signedIntString(p.Interval.Hi) + "]"
	case p.Number != nil:
		return *p.Number
	case p.Ident != nil:
		return *p.Ident
	default:
		return "(" + aexprString(p.Paren) + ")"
	}
}

func signedIntString(s *SignedInt) string {
	if s.Neg {
		return "-" + s.Value
	}
	return s.Value
}
