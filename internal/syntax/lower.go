package syntax

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/whileabs/whileabs/internal/ast"
)

// This file lowers the concrete syntax tree into the five-statement,
// six-Boolean-form AST internal/cfg knows how to lower further: repeat,
// for, compound assignment, the surface comparators (!=, <, >=, >) and
// `or` are all rewritten here, matching the desugaring the reference
// analyzer's own CST-to-AST pass performs (plus the bare increment
// statement, which is this module's own addition — see below).
//
// A bare `x++;`/`--x;` statement desugars straight to `x := x + 1` rather
// than wrapping ast.PostOp/ast.PreOp in an Assign: the latter would read
// back as `x := (x++)`, which — per this language's left-to-right,
// state-threading evaluation order — assigns the *pre*-increment value
// over the bump PostOp just made, making the whole statement a no-op.
// ast.PreOp/ast.PostOp exist to be embedded in a larger expression, not to
// stand alone as a statement.

func pos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func litInt(p lexer.Position, n int64) *ast.Lit {
	return &ast.Lit{Position: pos(p), Value: ast.IntervalLit{Pos: pos(p), Lo: n, Hi: n}}
}

func lowerProgram(p *Program) ast.Stmt {
	return composeStmts(p.Stmts)
}

func composeStmts(stmts []*Stmt) ast.Stmt {
	if len(stmts) == 0 {
		return &ast.Skip{}
	}
	out := lowerStmt(stmts[len(stmts)-1])
	for i := len(stmts) - 2; i >= 0; i-- {
		out = &ast.Compose{Left: lowerStmt(stmts[i]), Right: out}
	}
	return out
}

func lowerStmt(s *Stmt) ast.Stmt {
	switch {
	case s.Skip != nil:
		return &ast.Skip{Position: pos(s.Skip.Pos)}
	case s.AssignLik != nil:
		return lowerAssignLike(s.AssignLik)
	case s.Block != nil:
		return composeStmts(s.Block.Stmts)
	case s.If != nil:
		elseBranch := ast.Stmt(&ast.Skip{Position: pos(s.If.Pos)})
		if s.If.Else != nil {
			elseBranch = lowerStmt(s.If.Else)
		}
		return &ast.IfThenElse{
			Position: pos(s.If.Pos),
			Cond:     lowerBExpr(s.If.Cond),
			Then:     lowerStmt(s.If.Then),
			Else:     elseBranch,
		}
	case s.While != nil:
		return &ast.While{
			Position: pos(s.While.Pos),
			Cond:     lowerBExpr(s.While.Cond),
			Body:     lowerStmt(s.While.Body),
		}
	case s.Repeat != nil:
		// repeat S until b  <=>  S; while (not b) do S
		return &ast.Compose{
			Position: pos(s.Repeat.Pos),
			Left:     lowerStmt(s.Repeat.Body),
			Right: &ast.While{
				Position: pos(s.Repeat.Pos),
				Cond:     &ast.Not{Position: pos(s.Repeat.Pos), Operand: lowerBExpr(s.Repeat.Cond)},
				Body:     lowerStmt(s.Repeat.Body),
			},
		}
	case s.For != nil:
		// for (init; b; step) S  <=>  init; while b do { S; step; }
		return &ast.Compose{
			Position: pos(s.For.Pos),
			Left:     lowerAssignLike(s.For.Init),
			Right: &ast.While{
				Position: pos(s.For.Pos),
				Cond:     lowerBExpr(s.For.Cond),
				Body: &ast.Compose{
					Position: pos(s.For.Pos),
					Left:     lowerStmt(s.For.Body),
					Right:    lowerAssignLike(s.For.Step),
				},
			},
		}
	default:
		panic("syntax: empty Stmt alternative")
	}
}

func lowerAssignLike(a *AssignLike) ast.Stmt {
	p := pos(a.Pos)
	if a.PreOp != nil {
		return &ast.Assign{Position: p, Name: *a.PreName, Value: incDecExpr(a.Pos, *a.PreName, *a.PreOp)}
	}

	name := *a.Name
	if a.Op != nil {
		val := lowerAExpr(a.Value)
		switch *a.Op {
		case ":=":
			return &ast.Assign{Position: p, Name: name, Value: val}
		case "+=":
			return &ast.Assign{Position: p, Name: name, Value: &ast.BinOp{Position: p, Op: ast.Add, Left: &ast.Var{Position: p, Name: name}, Right: val}}
		case "-=":
			return &ast.Assign{Position: p, Name: name, Value: &ast.BinOp{Position: p, Op: ast.Sub, Left: &ast.Var{Position: p, Name: name}, Right: val}}
		default: // "*="
			return &ast.Assign{Position: p, Name: name, Value: &ast.BinOp{Position: p, Op: ast.Mul, Left: &ast.Var{Position: p, Name: name}, Right: val}}
		}
	}
	return &ast.Assign{Position: p, Name: name, Value: incDecExpr(a.Pos, name, *a.PostOp)}
}

func incDecExpr(p lexer.Position, name string, op string) ast.Aexpr {
	arith := ast.Add
	if op == "--" {
		arith = ast.Sub
	}
	return &ast.BinOp{Position: pos(p), Op: arith, Left: &ast.Var{Position: pos(p), Name: name}, Right: litInt(p, 1)}
}

// --- Boolean expressions ---

func lowerBExpr(b *BExpr) ast.Bexpr {
	out := lowerAndExpr(b.Left)
	for _, rest := range b.Rest {
		rhs := lowerAndExpr(rest)
		// a or b <=> not (not a and not b)
		out = &ast.Not{Position: pos(b.Pos), Operand: &ast.And{
			Position: pos(b.Pos),
			Left:     &ast.Not{Position: pos(b.Pos), Operand: out},
			Right:    &ast.Not{Position: pos(b.Pos), Operand: rhs},
		}}
	}
	return out
}

func lowerAndExpr(a *AndExpr) ast.Bexpr {
	out := lowerNotExpr(a.Left)
	for _, rest := range a.Rest {
		out = &ast.And{Position: pos(a.Pos), Left: out, Right: lowerNotExpr(rest)}
	}
	return out
}

func lowerNotExpr(n *NotExpr) ast.Bexpr {
	atom := lowerBAtom(n.Atom)
	if len(n.Nots)%2 == 1 {
		return &ast.Not{Position: pos(n.Pos), Operand: atom}
	}
	return atom
}

func lowerBAtom(a *BAtom) ast.Bexpr {
	switch {
	case a.True:
		return &ast.True{Position: pos(a.Pos)}
	case a.False:
		return &ast.False{Position: pos(a.Pos)}
	default:
		return lowerComparison(a.Cmp)
	}
}

func lowerComparison(c *Comparison) ast.Bexpr {
	p := pos(c.Pos)
	left := lowerAExpr(c.Left)
	right := lowerAExpr(c.Right)
	switch c.Op {
	case "==":
		return &ast.Equal{Position: p, Left: left, Right: right}
	case "<=":
		return &ast.LessEq{Position: p, Left: left, Right: right}
	case "!=":
		return &ast.Not{Position: p, Operand: &ast.Equal{Position: p, Left: left, Right: right}}
	case "<":
		// a < b <=> not (b <= a)
		return &ast.Not{Position: p, Operand: &ast.LessEq{Position: p, Left: right, Right: left}}
	case ">=":
		// a >= b <=> b <= a
		return &ast.LessEq{Position: p, Left: right, Right: left}
	default: // ">"
		// a > b <=> not (a <= b)
		return &ast.Not{Position: p, Operand: &ast.LessEq{Position: p, Left: left, Right: right}}
	}
}

// --- Arithmetic expressions ---

func lowerAExpr(a *AExpr) ast.Aexpr {
	out := lowerTerm(a.Left)
	for _, add := range a.Rest {
		op := ast.Add
		if add.Op == "-" {
			op = ast.Sub
		}
		out = &ast.BinOp{Position: pos(add.Pos), Op: op, Left: out, Right: lowerTerm(add.Right)}
	}
	return out
}

func lowerTerm(t *Term) ast.Aexpr {
	out := lowerFactor(t.Left)
	for _, mul := range t.Rest {
		op := ast.Mul
		if mul.Op == "/" {
			op = ast.Div
		}
		out = &ast.BinOp{Position: pos(mul.Pos), Op: op, Left: out, Right: lowerFactor(mul.Right)}
	}
	return out
}

func lowerFactor(f *Factor) ast.Aexpr {
	p := pos(f.Pos)
	switch {
	case f.Neg != nil:
		return &ast.BinOp{Position: p, Op: ast.Sub, Left: litInt(f.Pos, 0), Right: lowerFactor(f.Neg)}
	case f.PreOp != nil:
		op := ast.Inc
		if *f.PreOp == "--" {
			op = ast.Dec
		}
		return &ast.PreOp{Position: p, Op: op, Name: *f.PreName}
	default:
		inner := lowerPrimary(f.Primary)
		if f.PostOp != nil && f.Primary.Ident != nil {
			op := ast.Inc
			if *f.PostOp == "--" {
				op = ast.Dec
			}
			return &ast.PostOp{Position: p, Op: op, Name: *f.Primary.Ident}
		}
		return inner
	}
}

func lowerPrimary(pr *Primary) ast.Aexpr {
	p := pos(pr.Pos)
	switch {
	case pr.Interval != nil:
		lo, hi := pr.Interval.Lo.Int(), pr.Interval.Hi.Int()
		return &ast.Lit{Position: p, Value: ast.IntervalLit{Pos: p, Lo: lo, Hi: hi}}
	case pr.Number != nil:
		n, _ := strconv.ParseInt(*pr.Number, 10, 64)
		return &ast.Lit{Position: p, Value: ast.IntervalLit{Pos: p, Lo: n, Hi: n}}
	case pr.Ident != nil:
		return &ast.Var{Position: p, Name: *pr.Ident}
	default:
		return lowerAExpr(pr.Paren)
	}
}

// Int returns the signed value of a parsed literal integer.
func (s *SignedInt) Int() int64 {
	n, _ := strconv.ParseInt(s.Value, 10, 64)
	if s.Neg {
		return -n
	}
	return n
}
