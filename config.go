package memopool

import (
	"log/slog"

	"github.com/ygrebnov/memopool/metrics"
)

// config holds Scheduler configuration.
type config struct {
	// MaxThreads is the concurrency ceiling: the number of worker slots
	// that may execute simultaneously.
	// Zero means runtime.NumCPU() is applied at construction.
	// Default: 0.
	MaxThreads uint

	// Cache configures the result cache the scheduler constructs and owns.
	// Ignored when SharedCache is set.
	Cache CacheConfig

	// SharedCache is an optional externally owned cache. When set, the
	// scheduler uses it for memoization but does not close it on Shutdown.
	SharedCache *Cache

	// Runner executes task bodies. Nil selects the default goroutine-backed
	// runner.
	Runner Runner

	// Logger receives dispatch and completion events at debug level and
	// slot terminations at warn level. Nil discards them.
	Logger *slog.Logger

	// Metrics receives scheduler and cache instruments. Nil discards them.
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		MaxThreads: 0, // runtime.NumCPU() at construction
		Cache:      CacheConfig{},
	}
}

// validateConfig performs lightweight invariants checks.
// Options already reject out-of-range input at assembly time; this hook is
// reserved for cross-field validation.
func validateConfig(_ *config) error {
	return nil
}
