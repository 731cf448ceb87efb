package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whileabs/whileabs/internal/ast"
)

func TestLowerSkip(t *testing.T) {
	p := Lower(&ast.Skip{})
	assert.Equal(t, Label(1), p.LabelsNum)
	assert.Empty(t, p.Arcs)
}

func TestLowerAssign(t *testing.T) {
	p := Lower(&ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 1, Hi: 1}}})
	assert.Equal(t, Label(2), p.LabelsNum)
	assert.Equal(t, Label(0), p.Entry)
	assert.Equal(t, Label(1), p.ExitLabel())
	if assert.Len(t, p.Arcs, 1) {
		a := p.Arcs[0]
		assert.Equal(t, Label(0), a.From)
		assert.Equal(t, Label(1), a.To)
		cmd := a.Cmd.(AssignCmd)
		assert.Equal(t, "x", cmd.Var)
	}
}

func TestLowerCompose(t *testing.T) {
	s := &ast.Compose{
		Left:  &ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 1, Hi: 1}}},
		Right: &ast.Assign{Name: "y", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 2, Hi: 2}}},
	}
	p := Lower(s)
	assert.Equal(t, Label(3), p.LabelsNum)
	assert.Len(t, p.Arcs, 2)
	for _, a := range p.Arcs {
		assert.LessOrEqual(t, a.From, p.ExitLabel())
		assert.LessOrEqual(t, a.To, p.ExitLabel())
	}
}

func TestLowerIfThenElse(t *testing.T) {
	s := &ast.IfThenElse{
		Cond: &ast.True{},
		Then: &ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 1, Hi: 1}}},
		Else: &ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 2, Hi: 2}}},
	}
	p := Lower(s)
	assert.Equal(t, p.ExitLabel(), p.LabelsNum-1)
	// entry has exactly two outgoing test arcs
	var fromEntry int
	for _, a := range p.Arcs {
		if a.From == 0 {
			fromEntry++
			_, ok := a.Cmd.(TestCmd)
			assert.True(t, ok)
		}
	}
	assert.Equal(t, 2, fromEntry)
	incoming := p.IncomingArcs(p.ExitLabel())
	assert.Len(t, incoming, 2)
}

func TestLowerWhileRegistersWideningPoint(t *testing.T) {
	s := &ast.While{
		Cond: &ast.True{},
		Body: &ast.Assign{Name: "x", Value: &ast.Lit{Value: ast.IntervalLit{Lo: 1, Hi: 1}}},
	}
	p := Lower(s)
	assert.True(t, p.IsWideningPoint(0))
	assert.Equal(t, Label(0), p.Entry)
	for _, a := range p.Arcs {
		if _, ok := a.Cmd.(AssignCmd); ok {
			assert.Equal(t, Label(0), a.To)
		}
	}
}

func TestLowerWhileSkipBody(t *testing.T) {
	s := &ast.While{Cond: &ast.True{}, Body: &ast.Skip{}}
	p := Lower(s)
	assert.True(t, p.IsWideningPoint(0))
	assert.Equal(t, Label(2), p.LabelsNum)
	var bodyTo, exitTo []Label
	for _, a := range p.Arcs {
		tc := a.Cmd.(TestCmd)
		if _, ok := tc.Cond.(*ast.True); ok {
			bodyTo = append(bodyTo, a.To)
		} else {
			exitTo = append(exitTo, a.To)
		}
	}
	assert.Equal(t, []Label{0}, bodyTo)
	assert.Equal(t, []Label{1}, exitTo)
}
