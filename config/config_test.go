package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "TSFM_API_KEY", cfg.APIKeyEnv)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Backoff())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.False(t, cfg.History.Enabled)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
base_url: http://forecast.internal:9000
timeout_seconds: 5
retry:
  max_attempts: 5
  backoff_ms: 100
history:
  enabled: true
  path: /tmp/predictions.db
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://forecast.internal:9000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Backoff())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/predictions.db", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Log.Level)

	// unset fields keep defaults
	assert.Equal(t, "TSFM_API_KEY", cfg.APIKeyEnv)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "base_url: [not: valid")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, "base_url: http://one:8000\n")

	changes := make(chan *Config, 1)
	stop, err := Watch(path, func(cfg *Config) {
		select {
		case changes <- cfg:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("base_url: http://two:8000\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, "http://two:8000", cfg.BaseURL)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
