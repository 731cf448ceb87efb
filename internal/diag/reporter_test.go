package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whileabs/whileabs/internal/ast"
	"github.com/whileabs/whileabs/internal/interp"
)

func TestFormatParseErrorShowsCodeAndLocation(t *testing.T) {
	source := "x := ;\n"
	d := Diagnostic{
		Level:    LevelError,
		Code:     ErrorParse,
		Message:  "unexpected token \";\"",
		Position: ast.Position{Filename: "test.while", Line: 1, Column: 6},
		Length:   1,
	}

	formatted := NewReporter("test.while", source).Format(d)

	assert.Contains(t, formatted, "error["+ErrorParse+"]")
	assert.Contains(t, formatted, "test.while:1:6")
	assert.Contains(t, formatted, "x := ;")
}

func TestFromRuntimeErrorExtractsPositionAndMessage(t *testing.T) {
	prog := &ast.Assign{Name: "y", Value: &ast.Var{Name: "x"}}
	_, err := interp.Stmt(interp.State{}, prog)
	require.Error(t, err)

	d, ok := FromRuntimeError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorRuntime, d.Code)
	assert.Contains(t, d.Message, "x")
}

func TestGuardRecoversPanicAsInternalDiagnostic(t *testing.T) {
	d, panicked := Guard(func() { panic("division by zero") })
	require.True(t, panicked)
	assert.Equal(t, ErrorInternal, d.Code)
	assert.Contains(t, d.Message, "division by zero")
}

func TestGuardReturnsNoPanicWhenFnSucceeds(t *testing.T) {
	_, panicked := Guard(func() {})
	assert.False(t, panicked)
}
