// Package cfg builds the control-flow graph a WHILE program lowers to:
// dense integer labels, arcs carrying a Command, and the set of widening
// points chosen so every cycle passes through one. The shape generalizes
// the BasicBlock/Terminator/Loop.Header pattern from a basic-block IR down
// to this language's two-command, two-terminator-shape world (Test arcs
// stand in for BranchTerminator, fallthrough Assign arcs for JumpTerminator).
package cfg

import (
	"github.com/whileabs/whileabs/internal/ast"
)

// Label is a dense program-point index; entry is always 0, exit is always
// the largest label.
type Label uint32

// Command is an Assign or a Test, carried on an arc.
type Command interface {
	isCommand()
}

// AssignCmd is `x := a`.
type AssignCmd struct {
	Var  string
	Expr ast.Aexpr
}

func (AssignCmd) isCommand() {}

// TestCmd is a Boolean guard `b`.
type TestCmd struct {
	Cond ast.Bexpr
}

func (TestCmd) isCommand() {}

// Arc is (from, command, to).
type Arc struct {
	From Label
	Cmd  Command
	To   Label
}

// Program is the CFG: labels 0..LabelsNum-1, entry 0, arcs, and the set of
// widening points (loop heads) at which the fixpoint engine applies
// widening/narrowing instead of plain join.
type Program struct {
	LabelsNum      Label
	Entry          Label
	WideningPoints []Label
	Arcs           []Arc
}

// ExitLabel is the largest label, always the program's sole exit point.
func (p *Program) ExitLabel() Label { return p.LabelsNum - 1 }

// IsWideningPoint reports whether l is a loop head.
func (p *Program) IsWideningPoint(l Label) bool {
	for _, w := range p.WideningPoints {
		if w == l {
			return true
		}
	}
	return false
}

// IncomingArcs returns every arc whose target is l.
func (p *Program) IncomingArcs(l Label) []Arc {
	var out []Arc
	for _, a := range p.Arcs {
		if a.To == l {
			out = append(out, a)
		}
	}
	return out
}

func newProgram(arcs []Arc, wideningPoints []Label) *Program {
	var maxLabel Label
	for _, a := range arcs {
		if a.From > maxLabel {
			maxLabel = a.From
		}
		if a.To > maxLabel {
			maxLabel = a.To
		}
	}
	return &Program{
		LabelsNum:      maxLabel + 1,
		Entry:          0,
		WideningPoints: wideningPoints,
		Arcs:           arcs,
	}
}

// Lower translates a desugared AST statement into a CFG, following the
// recursive label-offset rules: Skip produces zero arcs; Assign one arc
// (labels 0,1); Compose concatenates by shifting s2's labels by
// labels_num(s1)-1 and identifying s1's exit with s2's entry; IfThenElse
// routes both branches' exits to a fresh common join label; While makes
// label 0 the loop head, with the body's exit rerouted back to it.
func Lower(s ast.Stmt) *Program {
	return lower(s)
}

func lower(s ast.Stmt) *Program {
	switch n := s.(type) {
	case *ast.Assign:
		return newProgram([]Arc{{From: 0, Cmd: AssignCmd{Var: n.Name, Expr: n.Value}, To: 1}}, nil)

	case *ast.Skip:
		return newProgram(nil, nil)

	case *ast.Compose:
		p1 := lower(n.Left)
		p2 := lower(n.Right)
		offset := p1.LabelsNum - 1
		arcs2 := shiftArcs(p2.Arcs, offset, p2.ExitLabel(), p2.ExitLabel()+offset)
		arcs := append(append([]Arc{}, arcs2...), p1.Arcs...)
		wps := append(append([]Label{}, p1.WideningPoints...), shiftLabels(p2.WideningPoints, offset)...)
		return newProgram(arcs, wps)

	case *ast.IfThenElse:
		p1 := lower(n.Then)
		p2 := lower(n.Else)

		offsetP1 := Label(0)
		if p1.LabelsNum > 1 {
			offsetP1 = 1
		}
		offsetP2 := offsetP1 + 1
		if p1.LabelsNum > 1 {
			offsetP2 = p1.LabelsNum
		}
		exitLabel := offsetP2 + p2.ExitLabel()

		thenTarget := exitLabel
		if p1.LabelsNum > 1 {
			thenTarget = 1
		}

		arcs := []Arc{
			{From: 0, Cmd: TestCmd{Cond: n.Cond}, To: thenTarget},
			{From: 0, Cmd: TestCmd{Cond: &ast.Not{Operand: n.Cond}}, To: offsetP2},
		}
		arcs = append(arcs, shiftArcs(p1.Arcs, offsetP1, p1.ExitLabel(), exitLabel)...)
		arcs = append(arcs, shiftArcs(p2.Arcs, offsetP2, p2.ExitLabel(), exitLabel)...)

		wps := append(shiftLabels(p1.WideningPoints, offsetP1), shiftLabels(p2.WideningPoints, offsetP2)...)
		return newProgram(arcs, wps)

	case *ast.While:
		p1 := lower(n.Body)
		offset := Label(1)
		exitLabel := p1.LabelsNum

		bodyTarget := Label(0)
		if p1.LabelsNum != 1 {
			bodyTarget = 1
		}

		arcs := []Arc{
			{From: 0, Cmd: TestCmd{Cond: n.Cond}, To: bodyTarget},
			{From: 0, Cmd: TestCmd{Cond: &ast.Not{Operand: n.Cond}}, To: exitLabel},
		}
		arcs = append(arcs, shiftArcs(p1.Arcs, offset, p1.ExitLabel(), 0)...)

		wps := append([]Label{0}, shiftLabels(p1.WideningPoints, offset)...)
		return newProgram(arcs, wps)

	default:
		panic("cfg: unknown statement node")
	}
}

func shiftArcs(arcs []Arc, offset, oldExit, newExit Label) []Arc {
	out := make([]Arc, len(arcs))
	for i, a := range arcs {
		to := a.To + offset
		if a.To == oldExit {
			to = newExit
		}
		out[i] = Arc{From: a.From + offset, Cmd: a.Cmd, To: to}
	}
	return out
}

func shiftLabels(ls []Label, offset Label) []Label {
	out := make([]Label, len(ls))
	for i, l := range ls {
		out[i] = l + offset
	}
	return out
}
