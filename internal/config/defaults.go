package config

import "github.com/asteroid-belt/subprofiler/internal/profiler"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Profile: ProfileConfig{
			EntropyLimit: profiler.DefaultEntropyLimit,
			Workers:      1,
		},
	}
}
