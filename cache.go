package memopool

import (
	"sync"
	"time"

	"github.com/ygrebnov/memopool/metrics"
)

// CacheConfig holds Cache configuration.
type CacheConfig struct {
	// TTL is the default lifetime of entries written without an explicit
	// ttl. Non-positive values fall back to the default.
	// Default: 1 hour.
	TTL time.Duration

	// MaxSize is the maximum number of resident entries. When a write finds
	// the cache at capacity, exactly one entry is evicted first: the one
	// with the oldest insertion order (FIFO, not access-recency-based).
	// Default: 1000.
	MaxSize int

	// SweepInterval is the period of the background expiry sweep. The sweep
	// bounds memory for entries that are set but never read again; Get
	// enforces expiry independently of it.
	// Default: 60 seconds.
	SweepInterval time.Duration

	// Metrics receives cache_evictions and cache_expirations counts.
	// Default: a no-op provider.
	Metrics metrics.Provider
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// Cache is a bounded key/value store with per-entry TTL and FIFO capacity
// eviction. A nil value is a legitimate cached value: the bool returned by
// Get is the authoritative found signal. Safe for concurrent use.
//
// The background sweep goroutine is started by NewCache and owned by the
// instance; release it with Close.
type Cache struct {
	ttl     time.Duration
	maxSize int

	mu      sync.Mutex
	entries map[string]*cacheEntry
	// order holds resident keys in insertion order; overwriting a key moves
	// it to the tail.
	order []string

	stopSweep chan struct{}
	closeOnce sync.Once

	evictions   metrics.Counter
	expirations metrics.Counter
}

// NewCache creates a Cache and starts its expiry sweep goroutine.
func NewCache(cfg CacheConfig) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1000
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}

	c := &Cache{
		ttl:         cfg.TTL,
		maxSize:     cfg.MaxSize,
		entries:     make(map[string]*cacheEntry),
		stopSweep:   make(chan struct{}),
		evictions:   cfg.Metrics.Counter("cache_evictions"),
		expirations: cfg.Metrics.Counter("cache_expirations"),
	}

	go c.sweep(cfg.SweepInterval)

	return c
}

// Set stores value under key with the cache's default TTL. Never fails.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with an explicit lifetime. A non-positive
// ttl produces an entry that is already expired: the next Get removes it
// and reports absent. Overwriting an existing key resets its FIFO position
// to newest. Never fails.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	expiresAt := time.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.maxSize {
		// at capacity: evict exactly one entry, the oldest-inserted one
		c.removeEntry(c.order[0])
		c.evictions.Add(1)
	}

	c.entries[key] = &cacheEntry{value: value, expiresAt: expiresAt}
	c.order = append(c.order, key)
}

// Get returns the value stored under key and whether it was found. An entry
// whose expiry has passed is removed as a side effect and reported absent,
// whether or not the sweep has run. Never fails.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		c.removeEntry(key)
		c.expirations.Add(1)
		return nil, false
	}
	return e.value, true
}

// Len returns the number of resident entries, expired-but-unswept ones
// included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the sweep goroutine. Idempotent; entries remain readable via
// Get after Close.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.stopSweep) })
}

// sweep periodically removes expired entries regardless of read activity.
func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopSweep:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// collect first: removeEntry mutates order
	var expired []string
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		c.removeEntry(key)
		c.expirations.Add(1)
	}
}

// removeEntry deletes key from both the entry table and the order index.
// Callers must hold mu.
func (c *Cache) removeEntry(key string) {
	delete(c.entries, key)
	c.removeFromOrder(key)
}

func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
