package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/whileabs/whileabs/internal/ast"
)

// RawAST renders s as a fully-parenthesized S-expression, one node per
// pair of parens, in the order a Go %#v dump of the tree would visit it.
func RawAST(s ast.Stmt) string {
	var b strings.Builder
	writeRawStmt(&b, s)
	return b.String()
}

func writeRawStmt(b *strings.Builder, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Assign:
		fmt.Fprintf(b, "(Assign %s ", n.Name)
		writeRawAexpr(b, n.Value)
		b.WriteString(")")
	case *ast.Skip:
		b.WriteString("(Skip)")
	case *ast.Compose:
		b.WriteString("(Compose ")
		writeRawStmt(b, n.Left)
		b.WriteString(" ")
		writeRawStmt(b, n.Right)
		b.WriteString(")")
	case *ast.IfThenElse:
		b.WriteString("(IfThenElse ")
		writeRawBexpr(b, n.Cond)
		b.WriteString(" ")
		writeRawStmt(b, n.Then)
		b.WriteString(" ")
		writeRawStmt(b, n.Else)
		b.WriteString(")")
	case *ast.While:
		b.WriteString("(While ")
		writeRawBexpr(b, n.Cond)
		b.WriteString(" ")
		writeRawStmt(b, n.Body)
		b.WriteString(")")
	default:
		panic("report: unknown statement node")
	}
}

func writeRawBexpr(b *strings.Builder, e ast.Bexpr) {
	switch n := e.(type) {
	case *ast.True:
		b.WriteString("(True)")
	case *ast.False:
		b.WriteString("(False)")
	case *ast.Equal:
		b.WriteString("(Equal ")
		writeRawAexpr(b, n.Left)
		b.WriteString(" ")
		writeRawAexpr(b, n.Right)
		b.WriteString(")")
	case *ast.LessEq:
		b.WriteString("(LessEq ")
		writeRawAexpr(b, n.Left)
		b.WriteString(" ")
		writeRawAexpr(b, n.Right)
		b.WriteString(")")
	case *ast.Not:
		b.WriteString("(Not ")
		writeRawBexpr(b, n.Operand)
		b.WriteString(")")
	case *ast.And:
		b.WriteString("(And ")
		writeRawBexpr(b, n.Left)
		b.WriteString(" ")
		writeRawBexpr(b, n.Right)
		b.WriteString(")")
	default:
		panic("report: unknown boolean expression node")
	}
}

func writeRawAexpr(b *strings.Builder, a ast.Aexpr) {
	switch n := a.(type) {
	case *ast.Lit:
		if n.Value.Lo == n.Value.Hi {
			fmt.Fprintf(b, "(Lit %d)", n.Value.Lo)
		} else {
			fmt.Fprintf(b, "(Lit [%d,%d])", n.Value.Lo, n.Value.Hi)
		}
	case *ast.Var:
		fmt.Fprintf(b, "(Var %s)", n.Name)
	case *ast.PreOp:
		fmt.Fprintf(b, "(PreOp %s %s)", n.Op, n.Name)
	case *ast.PostOp:
		fmt.Fprintf(b, "(PostOp %s %s)", n.Op, n.Name)
	case *ast.BinOp:
		fmt.Fprintf(b, "(BinOp %s ", n.Op)
		writeRawAexpr(b, n.Left)
		b.WriteString(" ")
		writeRawAexpr(b, n.Right)
		b.WriteString(")")
	default:
		panic("report: unknown arithmetic expression node")
	}
}

// PrettyAST renders s as indented, human-readable surface syntax for the
// already-desugared tree (no repeat/for/compound-assign — those are gone by
// the time a program reaches this stage; see internal/syntax's -C flag for
// the pre-desugaring round trip instead).
func PrettyAST(s ast.Stmt) string {
	var b strings.Builder
	writePrettyStmt(&b, s, 0)
	return b.String()
}

func prettyIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writePrettyStmt(b *strings.Builder, s ast.Stmt, depth int) {
	prettyIndent(b, depth)
	switch n := s.(type) {
	case *ast.Assign:
		fmt.Fprintf(b, "%s := %s;\n", n.Name, prettyAexpr(n.Value))
	case *ast.Skip:
		b.WriteString("skip;\n")
	case *ast.Compose:
		writePrettyStmt(b, n.Left, depth)
		writePrettyStmt(b, n.Right, depth)
		return
	case *ast.IfThenElse:
		fmt.Fprintf(b, "if %s then\n", prettyBexpr(n.Cond))
		writePrettyStmt(b, n.Then, depth+1)
		prettyIndent(b, depth)
		b.WriteString("else\n")
		writePrettyStmt(b, n.Else, depth+1)
	case *ast.While:
		fmt.Fprintf(b, "while %s do\n", prettyBexpr(n.Cond))
		writePrettyStmt(b, n.Body, depth+1)
	default:
		panic("report: unknown statement node")
	}
}

func prettyBexpr(e ast.Bexpr) string {
	switch n := e.(type) {
	case *ast.True:
		return "true"
	case *ast.False:
		return "false"
	case *ast.Equal:
		return prettyAexpr(n.Left) + " == " + prettyAexpr(n.Right)
	case *ast.LessEq:
		return prettyAexpr(n.Left) + " <= " + prettyAexpr(n.Right)
	case *ast.Not:
		return "not " + prettyBexpr(n.Operand)
	case *ast.And:
		return prettyBexpr(n.Left) + " and " + prettyBexpr(n.Right)
	default:
		panic("report: unknown boolean expression node")
	}
}

func prettyAexpr(a ast.Aexpr) string {
	switch n := a.(type) {
	case *ast.Lit:
		if n.Value.Lo == n.Value.Hi {
			return strconv.FormatInt(n.Value.Lo, 10)
		}
		return fmt.Sprintf("[%d,%d]", n.Value.Lo, n.Value.Hi)
	case *ast.Var:
		return n.Name
	case *ast.PreOp:
		return n.Op.String() + n.Name
	case *ast.PostOp:
		return n.Name + n.Op.String()
	case *ast.BinOp:
		return prettyAexpr(n.Left) + " " + n.Op.String() + " " + prettyAexpr(n.Right)
	default:
		panic("report: unknown arithmetic expression node")
	}
}
