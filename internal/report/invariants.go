// Package report turns an analysis result back into the text the CLI
// prints: loop invariants, the program's final invariant, and the debug
// dumps behind the -t/-a/-A/-c/-C flags.
package report

import (
	"fmt"
	"strings"

	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/fixpoint"
)

// Invariants renders one "i<k> (label <n>): <state>" line per widening point, in the
// order internal/cfg discovered them, followed by the program's final
// invariant at its exit label. Loop heads are identified by their CFG
// label rather than re-injected into a reconstruction of the source text:
// internal/cfg's labels don't carry source positions, so "annotating the
// source" means naming which label each i_k is, not interleaving markers
// into printed source.
func Invariants(prog *cfg.Program, states fixpoint.States, d domain.Domain) string {
	var b strings.Builder
	for k, label := range prog.WideningPoints {
		fmt.Fprintf(&b, "i%d (label %d): %s\n", k+1, label, states[label].String())
	}
	fmt.Fprintf(&b, "final (label %d): %s\n", prog.ExitLabel(), states[prog.ExitLabel()].String())
	return b.String()
}

// PerIteration renders the intermediate states fixpoint.AnalyzeTrace
// recorded for each round, the -i flag's per-iteration dump.
func PerIteration(rounds []fixpoint.States) string {
	var b strings.Builder
	for i, states := range rounds {
		fmt.Fprintf(&b, "round %d:\n", i)
		for label, s := range states {
			fmt.Fprintf(&b, "  %d: %s\n", label, s.String())
		}
	}
	return b.String()
}
