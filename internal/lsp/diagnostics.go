package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/whileabs/whileabs/internal/diag"
)

// ConvertParseError turns a internal/syntax.Parse error into the single LSP
// diagnostic it carries, or nil if err doesn't wrap a recognizable parse
// error (shouldn't happen for anything Parse itself returns).
func ConvertParseError(err error) []protocol.Diagnostic {
	d, ok := diag.FromParseError(err)
	if !ok {
		return nil
	}
	return []protocol.Diagnostic{diagnosticFrom(d)}
}

func diagnosticFrom(d diag.Diagnostic) protocol.Diagnostic {
	length := d.Length
	if length <= 0 {
		length = 1
	}
	line := uint32(0)
	if d.Position.Line > 0 {
		line = uint32(d.Position.Line - 1)
	}
	col := uint32(0)
	if d.Position.Column > 0 {
		col = uint32(d.Position.Column - 1)
	}

	severity := protocol.DiagnosticSeverityError
	message := d.Message
	if d.Code != "" {
		message = "[" + d.Code + "] " + d.Message
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + uint32(length)},
		},
		Severity: &severity,
		Source:   ptrString("whileabs-parser"),
		Message:  message,
	}
}

func ptrString(s string) *string { return &s }
