package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/pkg/sandboxeval"
)

func TestReadExpressionInput_InlineExpression(t *testing.T) {
	got, err := readExpressionInput([]string{"1 + 2"})
	require.NoError(t, err)
	require.Equal(t, "1 + 2", got)
}

func TestReadExpressionInput_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte("item.total"), 0o644))

	got, err := readExpressionInput([]string{path})
	require.NoError(t, err)
	require.Equal(t, "item.total", got)
}

func TestLoadEvalContext_FromInlineFlag(t *testing.T) {
	evalContextJSON = `{"item": {"total": 5}}`
	evalContextFile = ""
	defer func() { evalContextJSON = ""; evalContextFile = "" }()

	engine, err := sandboxeval.New()
	require.NoError(t, err)

	ctx, err := loadEvalContext(engine)
	require.NoError(t, err)
	require.Contains(t, ctx, "item")
}

func TestLoadEvalContext_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "context.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"label": "order"}`), 0o644))

	evalContextJSON = ""
	evalContextFile = path
	defer func() { evalContextJSON = ""; evalContextFile = "" }()

	engine, err := sandboxeval.New()
	require.NoError(t, err)

	ctx, err := loadEvalContext(engine)
	require.NoError(t, err)
	require.Equal(t, "order", ctx["label"].Str())
}

func TestLoadEvalContext_NoneSuppliedReturnsNil(t *testing.T) {
	evalContextJSON = ""
	evalContextFile = ""

	engine, err := sandboxeval.New()
	require.NoError(t, err)

	ctx, err := loadEvalContext(engine)
	require.NoError(t, err)
	require.Nil(t, ctx)
}
