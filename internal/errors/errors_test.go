package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/ast"
)

func TestSourceError_Format_NoColor(t *testing.T) {
	e := New(ErrorSecurity, ast.Position{Line: 2, Column: 5}, "blocked identifier: process", "a\nprocess.exit()", "")

	out := e.Format(false)

	require.Contains(t, out, "[security]")
	require.Contains(t, out, "2:5")
	require.Contains(t, out, "process.exit()")
	require.Contains(t, out, "blocked identifier: process")
	require.False(t, strings.Contains(out, "\033["), "non-color format must not contain ANSI escapes")
}

func TestSourceError_Format_Color(t *testing.T) {
	e := New(ErrorRuntime, ast.Position{Line: 1, Column: 1}, "division by zero", "1/0", "")

	out := e.Format(true)
	require.Contains(t, out, "division by zero")
}

func TestFormatErrors_Batch(t *testing.T) {
	errs := []*SourceError{
		New(ErrorSyntax, ast.Position{Line: 1, Column: 1}, "unexpected token", "x ++", ""),
		New(ErrorValueType, ast.Position{Line: 1, Column: 3}, "not a function", "x()", ""),
	}

	out := FormatErrors(errs, false)
	require.Contains(t, out, "2 error(s)")
	require.Contains(t, out, "[1 of 2]")
	require.Contains(t, out, "[2 of 2]")
}
