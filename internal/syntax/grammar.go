package syntax

import "github.com/alecthomas/participle/v2/lexer"

// This file is the concrete syntax tree participle parses WHILE source
// into. It mirrors the surface grammar directly, sugar and all (repeat,
// for, compound assignment, bare pre/post inc-dec statements, interval
// literals) — desugaring into the five core ast.Stmt forms happens in
// lower.go, not here.

// Program is a sequence of statements with nothing else at the top level.
type Program struct {
	Stmts []*Stmt `@@*`
}

type Stmt struct {
	Pos lexer.Position

	Skip      *SkipStmt      `  @@`
	AssignLik *AssignLike    `| @@`
	Block     *BlockStmt     `| @@`
	If        *IfStmt        `| @@`
	While     *WhileStmt     `| @@`
	Repeat    *RepeatStmt    `| @@`
	For       *ForStmt       `| @@`
}

type SkipStmt struct {
	Pos lexer.Position

	Kw string `@"skip" ";"`
}

// AssignLike covers `x := a;`, `x += a;`, `x -= a;`, `x *= a;`, and the bare
// pre/post inc-dec statements `++x;`/`x++;`; lower.go reads whichever of
// PreOp/Op/PostOp got filled in to tell the five forms apart.
type AssignLike struct {
	Pos lexer.Position

	PreOp    *string `(  @("++" | "--")`
	PreName  *string `   @Ident ";"`
	Name     *string `| @Ident (`
	Op       *string `     @(":=" | "+=" | "-=" | "*=")`
	Value    *AExpr  `     @@`
	PostOp   *string `   | @("++" | "--") ) ";" )`
}

type BlockStmt struct {
	Pos lexer.Position

	Stmts []*Stmt `"{" @@* "}"`
}

type IfStmt struct {
	Pos lexer.Position

	Cond *BExpr `"if" @@ "then"`
	Then *Stmt  `@@`
	Else *Stmt  `[ "else" @@ ]`
}

type WhileStmt struct {
	Pos lexer.Position

	Cond *BExpr `"while" @@ "do"`
	Body *Stmt  `@@`
}

type RepeatStmt struct {
	Pos lexer.Position

	Body *Stmt  `"repeat" @@`
	Cond *BExpr `"until" @@ ";"`
}

type ForStmt struct {
	Pos lexer.Position

	Init *AssignLike `"for" "(" @@`
	Cond *BExpr      `@@ ";"`
	Step *AssignLike `@@ ")"`
	Body *Stmt       `@@`
}

// --- Boolean expressions, loosest to tightest binding ---

// BExpr is `or`, the loosest-binding Boolean connective.
type BExpr struct {
	Pos lexer.Position

	Left *AndExpr   `@@`
	Rest []*AndExpr `{ "or" @@ }`
}

type AndExpr struct {
	Pos lexer.Position

	Left *NotExpr   `@@`
	Rest []*NotExpr `{ "and" @@ }`
}

// NotExpr is zero or more `not` prefixes over a comparison or grouped
// Boolean expression.
type NotExpr struct {
	Pos lexer.Position

	Nots []string `@"not"*`
	Atom *BAtom   `@@`
}

// BAtom has no parenthesized-Boolean-expression form: spec.md's grammar
// summary lists parentheses only under arithmetic, and the reference
// parser's own support for wrapping a comparison's left operand in "("
// is incomplete (a leading "(" there always commits to bool-grouping and
// can't back out), so dropping it avoids the ambiguity rather than
// reproducing it. `not`/`and`/`or` precedence covers grouping in practice.
type BAtom struct {
	Pos lexer.Position

	True  bool        `(  @"true"`
	False bool        ` | @"false"`
	Cmp   *Comparison ` | @@ )`
}

// Comparison is `a1 op a2` for one of the six comparators; every other
// Boolean operator desugars to `==`/`<=`/`not` in lower.go.
type Comparison struct {
	Pos lexer.Position

	Left  *AExpr `@@`
	Op    string `@("==" | "!=" | "<=" | ">=" | "<" | ">")`
	Right *AExpr `@@`
}

// --- Arithmetic expressions, loosest to tightest binding ---

// AExpr is `+`/`-`, the loosest-binding arithmetic level.
type AExpr struct {
	Pos lexer.Position

	Left *Term    `@@`
	Rest []*AddOp `{ @@ }`
}

type AddOp struct {
	Pos lexer.Position

	Op    string `@("+" | "-")`
	Right *Term  `@@`
}

// Term is `*`/`/`, binding tighter than `+`/`-`.
type Term struct {
	Pos lexer.Position

	Left *Factor  `@@`
	Rest []*MulOp `{ @@ }`
}

type MulOp struct {
	Pos lexer.Position

	Op    string  `@("*" | "/")`
	Right *Factor `@@`
}

// Factor is unary minus, a pre-increment/decrement, or a primary possibly
// followed by a post-increment/decrement — the tightest-binding level.
// PostOp is only meaningful when Primary matched; a leading "-" or pre-op
// never takes a trailing post-op in practice, and lower.go never consults
// PostOp for those two branches.
type Factor struct {
	Pos lexer.Position

	Neg      *Factor  `(  "-" @@`
	PreOp    *string  ` | @("++" | "--")`
	PreName  *string  `   @Ident`
	Primary  *Primary ` | @@ )`
	PostOp   *string  `[ @("++" | "--") ]`
}

type Primary struct {
	Pos lexer.Position

	Interval *IntervalLit `(  @@`
	Number   *string      ` | @Integer`
	Ident    *string      ` | @Ident`
	Paren    *AExpr       ` | "(" @@ ")" )`
}

// IntervalLit is `[lo,hi]`; a bare integer literal is sugar for `[n,n]`
// (handled at the Primary/Factor level, not here).
type IntervalLit struct {
	Pos lexer.Position

	Lo *SignedInt `"[" @@ ","`
	Hi *SignedInt `@@ "]"`
}

// SignedInt is an optionally-negated integer literal; the lexer never
// produces a signed Integer token, so the sign is a grammar-level prefix.
type SignedInt struct {
	Pos lexer.Position

	Neg   bool   `[ @"-" ]`
	Value string `@Integer`
}
