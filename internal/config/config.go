// Package config handles application configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all application configuration.
type Config struct {
	// Base directory for all subprofiler data ($XDG_DATA_HOME/subprofiler)
	BaseDir string `yaml:"-"`

	// Profiling settings
	Profile ProfileConfig `yaml:"profile"`

	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Prometheus textfile output; empty disables it
	MetricsFile string `yaml:"metrics_file"`
}

// ProfileConfig controls the clustering and runner.
type ProfileConfig struct {
	// Labels above this many bits of entropy are high entropy (default: 2.5)
	EntropyLimit float64 `yaml:"entropy_limit"`
	// Groups profiled concurrently (default: 1)
	Workers int `yaml:"workers"`
}

// DatabaseConfig holds store settings.
type DatabaseConfig struct {
	Debug bool `yaml:"debug"`
}

// Load builds the configuration from defaults, the optional config file in
// the base directory and environment variables, in that order.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if home := os.Getenv("SUBPROFILER_HOME"); home != "" {
		cfg.BaseDir = home
	}

	if err := cfg.loadFile(GetPaths(cfg).Config); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile overlays settings from a YAML file. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SUBPROFILER_ENTROPY_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: SUBPROFILER_ENTROPY_LIMIT: %w", ErrInvalidConfig, err)
		}
		c.Profile.EntropyLimit = limit
	}

	if v := os.Getenv("SUBPROFILER_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SUBPROFILER_WORKERS: %w", ErrInvalidConfig, err)
		}
		c.Profile.Workers = workers
	}

	if v := os.Getenv("SUBPROFILER_DB_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SUBPROFILER_DB_DEBUG: %w", ErrInvalidConfig, err)
		}
		c.Database.Debug = debug
	}

	if v := os.Getenv("SUBPROFILER_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}

	return nil
}

// Validate checks settings that would make a run impossible.
func (c *Config) Validate() error {
	if c.Profile.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Profile.Workers)
	}
	if c.BaseDir == "" {
		return fmt.Errorf("%w: base directory is empty", ErrInvalidConfig)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	for _, dir := range []string{cfg.BaseDir, paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
