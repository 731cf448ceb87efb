// Package ast is the syntax tree for the WHILE language: arithmetic and
// Boolean expressions, and the five core statement forms a parsed program
// desugars to before it is lowered into a CFG. It carries no abstract-domain
// knowledge — that only enters once a Program is abstracted over a chosen
// domain (see internal/cfg).
package ast

import "fmt"

// Position tracks where a node came from in source, for diagnostics.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
