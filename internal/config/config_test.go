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

	assert.Equal(t, 2.5, cfg.Profile.EntropyLimit)
	assert.Equal(t, 1, cfg.Profile.Workers)
	assert.False(t, cfg.Database.Debug)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "subprofiler", filepath.Base(cfg.BaseDir))
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data/sp"}
	paths := GetPaths(cfg)

	assert.Equal(t, "/data/sp/subprofiler.db", paths.Database)
	assert.Equal(t, "/data/sp/config.yaml", paths.Config)
	assert.Equal(t, "/data/sp/logs", paths.Logs)
}

func TestLoad_HomeFromEnv(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("SUBPROFILER_HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.DirExists(t, filepath.Join(home, "logs"))
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUBPROFILER_HOME", home)

	content := "profile:\n  entropy_limit: 3.1\n  workers: 4\ndatabase:\n  debug: true\nmetrics_file: /tmp/sp.prom\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3.1, cfg.Profile.EntropyLimit)
	assert.Equal(t, 4, cfg.Profile.Workers)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "/tmp/sp.prom", cfg.MetricsFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUBPROFILER_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("profile:\n  entropy_limit: 3.1\n  workers: 4\n"), 0644))

	t.Setenv("SUBPROFILER_ENTROPY_LIMIT", "1.75")
	t.Setenv("SUBPROFILER_WORKERS", "8")
	t.Setenv("SUBPROFILER_DB_DEBUG", "true")
	t.Setenv("SUBPROFILER_METRICS_FILE", "/var/lib/node_exporter/sp.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1.75, cfg.Profile.EntropyLimit)
	assert.Equal(t, 8, cfg.Profile.Workers)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "/var/lib/node_exporter/sp.prom", cfg.MetricsFile)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "entropy limit not a number", key: "SUBPROFILER_ENTROPY_LIMIT", val: "high"},
		{name: "workers not a number", key: "SUBPROFILER_WORKERS", val: "many"},
		{name: "workers zero", key: "SUBPROFILER_WORKERS", val: "0"},
		{name: "debug not a bool", key: "SUBPROFILER_DB_DEBUG", val: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUBPROFILER_HOME", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUBPROFILER_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("profile: [1, 2"), 0644))

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Profile.Workers = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.BaseDir = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
