package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/intercept-engine/internal/monitoring"
)

var keys = []string{"APP_ENV", "DEBUG", "GRAVITY", "DEFAULT_DT", "SEARCH_WORKERS", "OUTPUT_DIR", "APP_PORT", "CORS_ORIGINS"}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 9.81, cfg.Gravity)
	assert.Equal(t, 0.02, cfg.DefaultDT)
	assert.Equal(t, runtime.NumCPU(), cfg.SearchWorkers)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(`# scenario defaults
GRAVITY=1.62
DEFAULT_DT=0.005
DEBUG=1
SEARCH_WORKERS=3
OUTPUT_DIR=/tmp/plots
CORS_ORIGINS=https://a.example, ,https://b.example
`), 0o644))

	cfg := Load(path)
	assert.Equal(t, 1.62, cfg.Gravity)
	assert.Equal(t, 0.005, cfg.DefaultDT)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.SearchWorkers)
	assert.Equal(t, "/tmp/plots", cfg.OutputDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRAVITY", "3.71")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GRAVITY=1.62\n"), 0o644))

	cfg := Load(path)
	assert.Equal(t, 3.71, cfg.Gravity)
}

func TestUnparseableValuesFallBack(t *testing.T) {
	clearEnv(t)
	origLogf := monitoring.Logf
	t.Cleanup(func() { monitoring.SetLogger(origLogf) })
	monitoring.SetLogger(nil)

	t.Setenv("GRAVITY", "heavy")
	t.Setenv("SEARCH_WORKERS", "many")
	t.Setenv("DEBUG", "maybe")

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Equal(t, 9.81, cfg.Gravity)
	assert.Equal(t, runtime.NumCPU(), cfg.SearchWorkers)
	assert.False(t, cfg.Debug)
}
