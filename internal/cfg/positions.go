package cfg

import "github.com/whileabs/whileabs/internal/ast"

// WideningPositions maps each of s's widening points (as Lower would number
// them) to the source position of the `while`/`repeat`/`for` loop it heads.
// It mirrors Lower's own label-offset arithmetic exactly, recursing on the
// same subtrees, so the two stay in lockstep without Lower itself having to
// carry position bookkeeping it doesn't otherwise need. Used by internal/lsp
// to answer "what's the invariant at this loop head" from a cursor position.
func WideningPositions(s ast.Stmt) map[Label]ast.Position {
	out := map[Label]ast.Position{}
	collectWideningPositions(s, 0, out)
	return out
}

func collectWideningPositions(s ast.Stmt, base Label, out map[Label]ast.Position) {
	switch n := s.(type) {
	case *ast.Assign, *ast.Skip:
		// no widening points

	case *ast.Compose:
		offset := lower(n.Left).LabelsNum - 1
		collectWideningPositions(n.Left, base, out)
		collectWideningPositions(n.Right, base+offset, out)

	case *ast.IfThenElse:
		p1 := lower(n.Then)
		offsetP1 := Label(0)
		if p1.LabelsNum > 1 {
			offsetP1 = 1
		}
		offsetP2 := offsetP1 + 1
		if p1.LabelsNum > 1 {
			offsetP2 = p1.LabelsNum
		}
		collectWideningPositions(n.Then, base+offsetP1, out)
		collectWideningPositions(n.Else, base+offsetP2, out)

	case *ast.While:
		out[base] = n.Position
		collectWideningPositions(n.Body, base+1, out)

	default:
		panic("cfg: unknown statement node")
	}
}
