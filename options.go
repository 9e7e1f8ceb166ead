package memopool

import (
	"log/slog"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/memopool/metrics"
)

// Option configures a Scheduler. Use New(ctx, opts...) to construct one.
// An Option returns an error on invalid input instead of panicking.
type Option func(*config) error

// WithMaxThreads sets the concurrency ceiling (must be > 0). Without this
// option the ceiling defaults to runtime.NumCPU().
func WithMaxThreads(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxThreads requires n > 0"))
		}
		cfg.MaxThreads = n
		return nil
	}
}

// WithCacheTTL sets the default lifetime of cache entries (default 1 hour).
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *config) error {
		if ttl <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithCacheTTL requires ttl > 0"))
		}
		cfg.Cache.TTL = ttl
		return nil
	}
}

// WithCacheSize sets the maximum number of resident cache entries
// (default 1000).
func WithCacheSize(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithCacheSize requires n > 0"))
		}
		cfg.Cache.MaxSize = int(n)
		return nil
	}
}

// WithSweepInterval sets the period of the cache's background expiry sweep
// (default 60 seconds).
func WithSweepInterval(interval time.Duration) Option {
	return func(cfg *config) error {
		if interval <= 0 {
			return errorc.With(
				ErrInvalidConfig,
				errorc.String("", "WithSweepInterval requires interval > 0"),
			)
		}
		cfg.Cache.SweepInterval = interval
		return nil
	}
}

// WithCache makes the scheduler memoize into an externally owned cache.
// The caller keeps the cache's lifecycle: Shutdown will not close it.
// Cache-shape options (WithCacheTTL, WithCacheSize, WithSweepInterval) are
// ignored when a shared cache is supplied.
func WithCache(c *Cache) Option {
	return func(cfg *config) error {
		if c == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithCache requires a non-nil cache"))
		}
		cfg.SharedCache = c
		return nil
	}
}

// WithRunner sets the execution unit used to run task bodies. The default
// runner executes each body on its own goroutine; SyncRunner runs bodies
// inline for deterministic tests.
func WithRunner(r Runner) Option {
	return func(cfg *config) error {
		if r == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRunner requires a non-nil runner"))
		}
		cfg.Runner = r
		return nil
	}
}

// WithLogger sets the structured logger for dispatch and completion events.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider for scheduler and cache instruments.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}
