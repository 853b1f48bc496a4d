package sandboxeval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_AppliesOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sandboxeval.yaml")
	doc := `
timeoutMillis: 250
complexityCap: 10
strictMode: true
cacheSize: 64
extraBlockedIdentifiers:
  - dangerousGlobal
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.TimeoutMillis)
	require.Equal(t, 10.0, cfg.ComplexityCap)
	require.NotNil(t, cfg.StrictMode)
	require.True(t, *cfg.StrictMode)

	e, err := New(cfg.Options()...)
	require.NoError(t, err)

	result := e.Evaluate("dangerousGlobal", nil)
	require.False(t, result.Success)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
