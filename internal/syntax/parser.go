package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/whileabs/whileabs/internal/ast"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse parses src (with filename used only for diagnostics) into the
// desugared statement tree internal/cfg lowers from. The returned error is
// a participle.Error for a malformed program; callers that want caret-style
// reporting should type-assert it (see internal/diag).
func Parse(filename, src string) (ast.Stmt, error) {
	prog, err := ParseCST(filename, src)
	if err != nil {
		return nil, err
	}
	return lowerProgram(prog), nil
}

// ParseCST parses src into the raw concrete syntax tree, sugar and all,
// before any desugaring. Debug tooling (internal/report's -c/-C flags)
// wants the CST itself rather than the lowered AST Parse returns.
func ParseCST(filename, src string) (*Program, error) {
	prog, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return prog, nil
}
