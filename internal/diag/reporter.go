package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/interp"
)

// Level is the severity of a Diagnostic.
type Level string

const (
	LevelError Level = "error"
	LevelNote  Level = "note"
)

// Diagnostic is one reportable problem, anchored at a source position.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
}

// FromParseError builds a Diagnostic from the error internal/syntax.Parse
// returns, recovering the participle.Error it wraps for caret positioning.
// ok is false if err doesn't wrap a participle.Error (shouldn't happen for
// anything Parse itself returns, but callers that pass arbitrary errors
// should check it).
func FromParseError(err error) (Diagnostic, bool) {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return Diagnostic{}, false
	}
	pos := pe.Position()
	return Diagnostic{
		Level:   LevelError,
		Code:    ErrorParse,
		Message: pe.Message(),
		Position: ast.Position{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		},
		Length: 1,
	}, true
}

// FromRuntimeError builds a Diagnostic from an internal/interp.RuntimeError.
func FromRuntimeError(err error) (Diagnostic, bool) {
	var rerr *interp.RuntimeError
	if !errors.As(err, &rerr) {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Level:    LevelError,
		Code:     ErrorRuntime,
		Message:  rerr.Msg,
		Position: rerr.Pos,
		Length:   1,
	}, true
}

// Guard runs fn and, if it panics, recovers and reports the panic as a
// Diagnostic instead of letting it unwind into a stack trace. This is the
// only place in the whole module that calls recover — xint's ∞-∞ and n/0
// panics, and any other programmer error, surface this way at the CLI
// boundary instead of crashing loudly with a Go stack trace.
func Guard(fn func()) (d Diagnostic, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			d, panicked = Internal(r), true
		}
	}()
	fn()
	return Diagnostic{}, false
}

// Internal builds a Diagnostic for a panic recovered at the CLI boundary
// (division by zero, ∞-∞, or any other programmer error that escaped as a
// panic instead of a typed error). It carries no source position.
func Internal(recovered any) Diagnostic {
	return Diagnostic{
		Level:   LevelError,
		Code:    ErrorInternal,
		Message: fmt.Sprintf("internal error: %v", recovered),
	}
}

// Reporter renders Diagnostics against one source file, caret under the
// offending column, with the surrounding two lines of context.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for source taken from filename.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders d as a colored, multi-line caret diagnostic.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if d.Level == LevelNote {
		levelColor = color.New(color.FgBlue, color.Bold).SprintFunc()
	}
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if d.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelColor(string(d.Level)), d.Message)
	}

	if d.Position.Line <= 0 || d.Position.Line > len(r.lines) {
		return out.String()
	}

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)
	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	if d.Position.Line > 1 {
		fmt.Fprintf(&out, "%s %s %s\n", dim(pad(d.Position.Line-1, width)), dim("│"), r.lines[d.Position.Line-2])
	}

	fmt.Fprintf(&out, "%s %s %s\n", bold(pad(d.Position.Line, width)), dim("│"), r.lines[d.Position.Line-1])

	length := d.Length
	if length <= 0 {
		length = 1
	}
	marker := strings.Repeat(" ", max0(d.Position.Column-1)) + levelColor(strings.Repeat("^", length))
	fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), marker)

	if d.Position.Line < len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n", dim(pad(d.Position.Line+1, width)), dim("│"), r.lines[d.Position.Line])
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	return out.String()
}

func pad(n, width int) string { return fmt.Sprintf("%*d", width, n) }

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
