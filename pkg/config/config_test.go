package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBufferSize, cfg.Input.BufferSize)
	assert.Equal(t, DefaultGrowthIncrement, cfg.Input.GrowthIncrement)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
input:
  buffer_size: 256
  waiter_limit: 4
logging:
  level: debug
metrics:
  enabled: true
  bind: "127.0.0.1:9999"
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Input.BufferSize)
	assert.Equal(t, 4, cfg.Input.WaiterLimit)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultGrowthIncrement, cfg.Input.GrowthIncrement)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Metrics.Bind)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONHOST_INPUT_BUFFER_SIZE", "512")
	t.Setenv("CONHOST_LOG_LEVEL", "warn")
	t.Setenv("CONHOST_METRICS_ENABLED", "true")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	assert.Equal(t, 512, cfg.Input.BufferSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.BufferSize = 1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Bind = "not a hostport"
	assert.Error(t, cfg.Validate())
}
