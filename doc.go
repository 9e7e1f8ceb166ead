// Package memopool provides bounded-concurrency execution of independent
// tasks over a fixed set of slots, combined with memoization of results
// keyed by a fingerprint of each task's stable identity and input.
//
// Constructors
//   - New[R](ctx, opts ...Option): builds a Scheduler using functional options.
//   - NewCache(cfg CacheConfig): builds a standalone result cache.
//
// Defaults
// Unless overridden, a newly created Scheduler uses:
//   - MaxThreads: runtime.NumCPU()
//   - Cache TTL: 1 hour
//   - Cache MaxSize: 1000 entries
//   - Cache SweepInterval: 60 seconds
//
// Lifecycle
// A Scheduler owns its cache unless one is supplied via WithCache. Shutdown
// cancels active slots, resolves every still-queued task with
// ErrSchedulerClosed, and closes an owned cache. A Future returned by Submit
// resolves exactly once; Submit after Shutdown fails with ErrSchedulerClosed.
//
// Ordering
// Among cache misses, slots start in submission order; completion order is
// whichever slot reports first. Cache hits resolve immediately without
// consuming a slot and may overtake earlier misses. Callers must not assume
// strict temporal ordering across mixed hit/miss submissions.
package memopool
