// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultLongitude is assumed for birth inputs without one.
	DefaultLongitude float64 `koanf:"default_longitude"`

	// PoolBackend selects the candidate pool store: memory or sqlite.
	PoolBackend string `koanf:"pool_backend"`

	// PoolDSN is the SQLite DSN used when PoolBackend is sqlite.
	PoolDSN string `koanf:"pool_dsn"`

	// SeedQueueSize bounds the in-memory seed job queue.
	SeedQueueSize int `koanf:"seed_queue_size"`

	// WorkerCount sets the number of pool seeding workers.
	WorkerCount int `koanf:"worker_count"`

	// SeedOnStart enqueues the elite seed jobs when the service starts.
	SeedOnStart bool `koanf:"seed_on_start"`

	// SeedDayStep and SeedHourStep control seed sampling density:
	// days 1, 1+step, ... per month and hours 0, step, ... per day.
	SeedDayStep  int `koanf:"seed_day_step"`
	SeedHourStep int `koanf:"seed_hour_step"`

	// SampleCeiling caps how many pool candidates one search examines.
	SampleCeiling int `koanf:"sample_ceiling"`

	// SearchTarget is the default number of matches a search collects.
	SearchTarget int `koanf:"search_target"`

	// SearchThreshold is the default minimum score for a match.
	SearchThreshold float64 `koanf:"search_threshold"`

	// ProfileCacheSize bounds the derived-profile cache.
	ProfileCacheSize int `koanf:"profile_cache_size"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		DefaultLongitude: 114.17,
		PoolBackend:      "memory",
		PoolDSN:          "hehun-pool.db",
		SeedQueueSize:    100_000,
		WorkerCount:      runtime.NumCPU() * 2,
		SeedOnStart:      false,
		SeedDayStep:      10,
		SeedHourStep:     6,
		SampleCeiling:    500,
		SearchTarget:     10,
		SearchThreshold:  68.0,
		ProfileCacheSize: 10_000,
	}
	return c
}
