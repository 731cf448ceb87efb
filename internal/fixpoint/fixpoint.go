// Package fixpoint runs the chaotic iteration that computes an invariant at
// every program point: repeatedly propagate abstract state along arcs and
// join at each label until the label-to-state map stops changing, applying
// widening at loop heads to force termination and, optionally, a narrowing
// pass afterward to recover precision.
package fixpoint

import (
	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/eval"
	"github.com/whileabs/whileabs/internal/refine"
	"github.com/whileabs/whileabs/internal/state"
)

// Strategy selects how the ascending (and optionally descending) chain is
// stabilized.
type Strategy int

const (
	// Simple iterates plain lub with no widening; only terminates on
	// domains of finite height (Sign, ExtendedSign, Congruence).
	Simple Strategy = iota
	// Widening applies widening at every widening point until the
	// ascending chain stabilizes.
	Widening
	// WideningAndNarrowing runs Widening, then refines the result with a
	// narrowing pass that applies narrowing at every widening point until
	// the descending chain stabilizes.
	WideningAndNarrowing
)

// States maps every CFG label to the abstract state computed for it.
type States map[cfg.Label]*state.State

// ApplyCommand runs a single arc's command over old, returning the state it
// produces. Assign goes through eval; Test goes through the backward
// refiner, since only it can soundly narrow a state.
func ApplyCommand(d domain.Domain, old *state.State, cmd cfg.Command) *state.State {
	switch c := cmd.(type) {
	case cfg.AssignCmd:
		return eval.ApplyAssign(d, old, c.Var, c.Expr)
	case cfg.TestCmd:
		return refine.Test(d, old.Clone(), c.Cond)
	default:
		panic("fixpoint: unknown command")
	}
}

// Analyze computes the invariant at every label of prog, starting the entry
// label at initState and every other label at Bottom.
func Analyze(prog *cfg.Program, d domain.Domain, initState *state.State, strategy Strategy) States {
	all := States{}
	for i := cfg.Label(0); i < prog.LabelsNum; i++ {
		all[i] = state.Bottom()
	}

	stepKind := stepNormal
	if strategy != Simple {
		stepKind = stepWidening
	}
	all = iterateToFixpoint(prog, d, initState, all, stepKind)

	if strategy == WideningAndNarrowing {
		all = iterateToFixpoint(prog, d, initState, all, stepNarrowing)
	}
	return all
}

// AnalyzeTrace runs the same computation as Analyze but additionally
// returns every intermediate round (widening phase only, then narrowing
// phase if requested), for the -i per-iteration debug dump.
func AnalyzeTrace(prog *cfg.Program, d domain.Domain, initState *state.State, strategy Strategy) (States, []States) {
	all := States{}
	for i := cfg.Label(0); i < prog.LabelsNum; i++ {
		all[i] = state.Bottom()
	}

	stepKind := stepNormal
	if strategy != Simple {
		stepKind = stepWidening
	}

	var rounds []States
	all = iterateToFixpointTraced(prog, d, initState, all, stepKind, &rounds)

	if strategy == WideningAndNarrowing {
		all = iterateToFixpointTraced(prog, d, initState, all, stepNarrowing, &rounds)
	}
	return all, rounds
}

func iterateToFixpointTraced(prog *cfg.Program, d domain.Domain, initState *state.State, states States, step stepKind, rounds *[]States) States {
	next := makeIteration(prog, d, initState, states, step)
	*rounds = append(*rounds, next)
	for !statesEqual(d, next, states) {
		states = next
		next = makeIteration(prog, d, initState, states, step)
		*rounds = append(*rounds, next)
	}
	return next
}

type stepKind int

const (
	stepNormal stepKind = iota
	stepWidening
	stepNarrowing
)

func iterateToFixpoint(prog *cfg.Program, d domain.Domain, initState *state.State, states States, step stepKind) States {
	next := makeIteration(prog, d, initState, states, step)
	for !statesEqual(d, next, states) {
		states = next
		next = makeIteration(prog, d, initState, states, step)
	}
	return next
}

func makeIteration(prog *cfg.Program, d domain.Domain, initState *state.State, states States, step stepKind) States {
	out := States{}
	for i := cfg.Label(0); i < prog.LabelsNum; i++ {
		newState := state.Bottom()
		if i == prog.Entry {
			newState = initState.Clone()
		}
		for _, arc := range prog.IncomingArcs(i) {
			from, ok := states[arc.From]
			if !ok {
				panic("fixpoint: missing abstract state for a label")
			}
			newState = state.Lub(d, newState, ApplyCommand(d, from, arc.Cmd))
		}

		if prog.IsWideningPoint(i) {
			old := states[i]
			switch step {
			case stepWidening:
				newState = state.Widening(d, old, newState)
			case stepNarrowing:
				newState = state.Narrowing(d, old, newState)
			}
		}
		out[i] = newState
	}
	return out
}

func statesEqual(d domain.Domain, a, b States) bool {
	if len(a) != len(b) {
		return false
	}
	for l, sa := range a {
		sb, ok := b[l]
		if !ok || !state.Equal(d, sa, sb) {
			return false
		}
	}
	return true
}
