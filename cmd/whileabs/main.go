// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/whileabs/whileabs/internal/cfg"
	"github.com/whileabs/whileabs/internal/config"
	"github.com/whileabs/whileabs/internal/diag"
	"github.com/whileabs/whileabs/internal/domain"
	"github.com/whileabs/whileabs/internal/fixpoint"
	"github.com/whileabs/whileabs/internal/interp"
	"github.com/whileabs/whileabs/internal/report"
	"github.com/whileabs/whileabs/internal/state"
	"github.com/whileabs/whileabs/internal/syntax"
)

func main() {
	cmdConfig, err := config.Parse(os.Args[1:])
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(cmdConfig.File)
	if err != nil {
		color.Red("failed to read %s: %s", cmdConfig.File, err)
		os.Exit(1)
	}
	src := string(source)
	reporter := diag.NewReporter(cmdConfig.File, src)

	switch cmdConfig.Command {
	case config.Run:
		runCommand(cmdConfig, src, reporter)
	case config.Analyze:
		analyzeCommand(cmdConfig, src, reporter)
	}
}

func runCommand(c *config.Config, src string, reporter *diag.Reporter) {
	stmt, err := syntax.Parse(c.File, src)
	if err != nil {
		d, _ := diag.FromParseError(err)
		fmt.Print(reporter.Format(d))
		os.Exit(1)
	}

	initial, err := parseConcreteState(c.State)
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	var runErr error
	d, panicked := diag.Guard(func() {
		var final interp.State
		final, runErr = interp.Stmt(initial, stmt)
		if runErr == nil {
			printConcreteState(final)
		}
	})
	if panicked {
		fmt.Print(reporter.Format(d))
		os.Exit(1)
	}
	if runErr != nil {
		rd, _ := diag.FromRuntimeError(runErr)
		fmt.Print(reporter.Format(rd))
		os.Exit(1)
	}
}

func analyzeCommand(c *config.Config, src string, reporter *diag.Reporter) {
	if c.PrintTokens {
		printOrDie(report.Tokens(c.File, src))
	}
	if c.PrintRawCST {
		printOrDie(report.RawCST(c.File, src))
	}
	if c.PrintPrettyCST {
		printOrDie(report.PrettyCST(c.File, src))
	}

	stmt, err := syntax.Parse(c.File, src)
	if err != nil {
		d, _ := diag.FromParseError(err)
		fmt.Print(reporter.Format(d))
		os.Exit(1)
	}

	if c.PrintRawAST {
		fmt.Println(report.RawAST(stmt))
	}
	if c.PrintPrettyAST {
		fmt.Println(report.PrettyAST(stmt))
	}

	dom, ok := domain.ByName(c.Domain)
	if !ok {
		color.Red("unknown domain %q", c.Domain)
		os.Exit(1)
	}
	if c.Conf != "" {
		if err := dom.SetConfig(c.Conf); err != nil {
			color.Red("%s", err)
			os.Exit(1)
		}
	}

	initial := state.Top()
	if c.State != "" {
		initial, err = state.FromString(dom, c.State)
		if err != nil {
			color.Red("%s", err)
			os.Exit(1)
		}
	}

	strategy := fixpoint.Simple
	switch {
	case c.Widening && c.Narrowing:
		strategy = fixpoint.WideningAndNarrowing
	case c.Widening:
		strategy = fixpoint.Widening
	}

	prog := cfg.Lower(stmt)

	d, panicked := diag.Guard(func() {
		if c.PerIter {
			final, rounds := fixpoint.AnalyzeTrace(prog, dom, initial, strategy)
			fmt.Print(report.PerIteration(rounds))
			fmt.Print(report.Invariants(prog, final, dom))
		} else {
			states := fixpoint.Analyze(prog, dom, initial, strategy)
			fmt.Print(report.Invariants(prog, states, dom))
		}
	})
	if panicked {
		fmt.Print(reporter.Format(d))
		os.Exit(1)
	}
}

func printOrDie(out string, err error) {
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

// parseConcreteState reads the "var:val;var:val;…" CLI state syntax with
// plain machine-integer values, the concrete counterpart of
// internal/state.FromString's abstract-element parsing.
func parseConcreteState(s string) (interp.State, error) {
	out := interp.State{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	for _, binding := range strings.Split(s, ";") {
		binding = strings.TrimSpace(binding)
		if binding == "" {
			continue
		}
		parts := strings.SplitN(binding, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed state binding %q, expected var:val", binding)
		}
		val, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed state value in %q: %w", binding, err)
		}
		out[strings.TrimSpace(parts[0])] = val
	}
	return out, nil
}

func printConcreteState(s interp.State) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s = %d\n", k, s[k])
	}
}
