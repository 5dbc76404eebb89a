package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikhila-inturi/cartify/internal/config"
)

// chdir moves into an empty directory so no stray config.yaml or .env
// leaks into the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.Serve.Addr)
	assert.True(t, cfg.Serve.Metrics.Enabled)
	assert.Equal(t, "cartify", cfg.Serve.Metrics.Namespace)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdir(t)

	yaml := []byte(`
api:
  base_url: https://orders.internal:8443
  page_size: 50
cache:
  enabled: false
log:
  level: debug
  format: text
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://orders.internal:8443", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.API.PageSize)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t)
	t.Setenv("CARTIFY_API_BASE_URL", "http://envhost:9000")
	t.Setenv("CARTIFY_API_AUTH_TOKEN", "tok-env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://envhost:9000", cfg.API.BaseURL)
	assert.Equal(t, "tok-env", cfg.API.AuthToken)
}

func TestLegacyDotEnv(t *testing.T) {
	dir := chdir(t)

	env := []byte("API_BASE_URL=http://legacy:7070\nAPI_PAGE_SIZE=5\nLOG_LEVEL=warn\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), env, 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://legacy:7070", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.PageSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		c := config.LogConfig{Level: tt.level}
		assert.Equal(t, tt.want, c.SlogLevel(), "level %q", tt.level)
	}
}
