// Package config parses the CLI's two subcommands into a Config the rest
// of the tool runs from. It never touches the domain/state machinery
// itself — those strings are handed, unparsed, to internal/domain and
// internal/state, which already know how to read them.
package config

import (
	"flag"
	"fmt"
)

// Command is which subcommand was invoked.
type Command int

const (
	// Run executes the concrete interpreter.
	Run Command = iota
	// Analyze runs the abstract analyzer.
	Analyze
)

// Config is the fully-parsed command line.
type Config struct {
	Command Command
	File    string

	// Analyze-only flags.
	Domain    string // sign | extended-sign | bounded-interval | cong
	Conf      string // domain-specific config string, e.g. "[-100,100]"
	Widening  bool
	Narrowing bool
	PerIter   bool

	// Shared.
	State string // "var:val;var:val;…"

	// Parser-debug flags (analyze only).
	PrintTokens    bool
	PrintRawAST    bool
	PrintPrettyAST bool
	PrintRawCST    bool
	PrintPrettyCST bool
}

// Parse parses argv (os.Args[1:]) into a Config. The first element must be
// "run" or "analyze".
func Parse(argv []string) (*Config, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("usage: whileabs <run|analyze> <file> [flags]")
	}

	switch argv[0] {
	case "run":
		return parseRun(argv[1:])
	case "analyze":
		return parseAnalyze(argv[1:])
	default:
		return nil, fmt.Errorf("unknown command %q, expected \"run\" or \"analyze\"", argv[0])
	}
}

func parseRun(rest []string) (*Config, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	state := fs.String("state", "", `initial state, "var:val;var:val;…"`)
	if err := fs.Parse(rest); err != nil {
		return nil, err
	}
	file, err := requireFile(fs)
	if err != nil {
		return nil, err
	}
	return &Config{Command: Run, File: file, State: *state}, nil
}

func parseAnalyze(rest []string) (*Config, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	domainName := fs.String("domain", "bounded-interval", "sign | extended-sign | bounded-interval | cong")
	conf := fs.String("conf", "", "domain-specific configuration string")
	state := fs.String("state", "", `initial state, "var:val;var:val;…"`)
	widening := fs.Bool("W", false, "apply widening")
	narrowing := fs.Bool("N", false, "apply narrowing (requires -W)")
	perIter := fs.Bool("i", false, "print per-iteration state maps")
	tokens := fs.Bool("t", false, "print the token stream")
	rawAST := fs.Bool("a", false, "print the raw AST")
	prettyAST := fs.Bool("A", false, "print a pretty AST")
	rawCST := fs.Bool("c", false, "print the raw CST")
	prettyCST := fs.Bool("C", false, "print a pretty (round-tripped) CST")
	if err := fs.Parse(rest); err != nil {
		return nil, err
	}
	file, err := requireFile(fs)
	if err != nil {
		return nil, err
	}
	if *narrowing && !*widening {
		return nil, fmt.Errorf("-N requires -W")
	}
	return &Config{
		Command:        Analyze,
		File:           file,
		Domain:         *domainName,
		Conf:           *conf,
		State:          *state,
		Widening:       *widening,
		Narrowing:      *narrowing,
		PerIter:        *perIter,
		PrintTokens:    *tokens,
		PrintRawAST:    *rawAST,
		PrintPrettyAST: *prettyAST,
		PrintRawCST:    *rawCST,
		PrintPrettyCST: *prettyCST,
	}, nil
}

func requireFile(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one file argument, got %d", fs.NArg())
	}
	return fs.Arg(0), nil
}
