// Package config loads the console host configuration from YAML files
// and environment variables. Defaults apply first, then the config file,
// then CONHOST_* environment overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation
const (
	DefaultBufferSize      = 128
	DefaultGrowthIncrement = 10
	DefaultWaiterLimit     = 0 // 0 = unlimited
	DefaultLogLevel        = "info"
	DefaultMetricsBind     = "127.0.0.1:9187"
)

// Config represents the complete console host configuration
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// InputConfig controls the input queue
type InputConfig struct {
	BufferSize      int `yaml:"buffer_size"`      // Queue capacity in event slots
	GrowthIncrement int `yaml:"growth_increment"` // Extra slots added on each growth
	WaiterLimit     int `yaml:"waiter_limit"`     // Max concurrently blocked readers (0 = unlimited)
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	Dir   string `yaml:"dir"`   // Log directory (empty disables logging)
	Level string `yaml:"level"` // debug, info, warn, error
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			BufferSize:      DefaultBufferSize,
			GrowthIncrement: DefaultGrowthIncrement,
			WaiterLimit:     DefaultWaiterLimit,
		},
		Logging: LoggingConfig{
			Dir:   defaultLogDir(),
			Level: DefaultLogLevel,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Bind:    DefaultMetricsBind,
		},
	}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".conhost", "logs")
}

// Load loads configuration from the default location (~/.conhost/config.yaml)
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		path := filepath.Join(home, ".conhost", "config.yaml")
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CONHOST_INPUT_BUFFER_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Input.BufferSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CONHOST_INPUT_GROWTH_INCREMENT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Input.GrowthIncrement = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CONHOST_INPUT_WAITER_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Input.WaiterLimit = n
		}
	}
	if v := os.Getenv("CONHOST_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("CONHOST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := envBool("CONHOST_METRICS_ENABLED"); ok {
		cfg.Metrics.Enabled = v
	}
	if v := os.Getenv("CONHOST_METRICS_BIND"); v != "" {
		cfg.Metrics.Bind = v
		cfg.Metrics.Enabled = true
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Input.BufferSize < 2 {
		return fmt.Errorf("input.buffer_size must be at least 2, got %d", c.Input.BufferSize)
	}
	if c.Input.GrowthIncrement < 1 {
		return fmt.Errorf("input.growth_increment must be at least 1, got %d", c.Input.GrowthIncrement)
	}
	if c.Input.WaiterLimit < 0 {
		return fmt.Errorf("input.waiter_limit must not be negative, got %d", c.Input.WaiterLimit)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Bind); err != nil {
			return fmt.Errorf("metrics.bind %q: %w", c.Metrics.Bind, err)
		}
	}
	return nil
}
