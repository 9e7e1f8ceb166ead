package memopool

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/memopool/metrics"
)

func newTestCache(t *testing.T, cfg CacheConfig) *Cache {
	t.Helper()
	c := NewCache(cfg)
	t.Cleanup(c.Close)
	return c
}

func TestCache_Defaults(t *testing.T) {
	c := newTestCache(t, CacheConfig{})

	require.Equal(t, time.Hour, c.ttl)
	require.Equal(t, 1000, c.maxSize)
}

func TestCache_GetSet_TTL(t *testing.T) {
	c := newTestCache(t, CacheConfig{TTL: 50 * time.Millisecond, SweepInterval: time.Hour})

	c.Set("k", "v")

	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get("k")
	require.False(t, ok, "entry past its expiry must be absent")
	require.Equal(t, 0, c.Len(), "expired-at-read entry must be removed")
}

func TestCache_SetTTL_NonPositiveIsBornExpired(t *testing.T) {
	c := newTestCache(t, CacheConfig{SweepInterval: time.Hour})

	c.SetTTL("zero", "v", 0)
	c.SetTTL("negative", "v", -time.Second)

	_, ok := c.Get("zero")
	require.False(t, ok)
	_, ok = c.Get("negative")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestCache_FIFOEviction(t *testing.T) {
	provider := metrics.NewBasicProvider()
	c := newTestCache(t, CacheConfig{MaxSize: 2, SweepInterval: time.Hour, Metrics: provider})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	require.False(t, ok, "oldest-inserted key must be evicted first")

	v, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	v, ok = c.Get("c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	require.Equal(t, 2, c.Len())
	require.Equal(t, int64(1), provider.CounterValue("cache_evictions"))
}

func TestCache_OverwriteResetsInsertionOrder(t *testing.T) {
	c := newTestCache(t, CacheConfig{MaxSize: 2, SweepInterval: time.Hour})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10) // a becomes newest
	c.Set("c", 3)  // evicts b, now the oldest

	_, ok := c.Get("b")
	require.False(t, ok)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 10, v)

	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestCache_SizeNeverExceedsMaxAfterWrite(t *testing.T) {
	c := newTestCache(t, CacheConfig{MaxSize: 5, SweepInterval: time.Hour})

	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		require.LessOrEqual(t, c.Len(), 5)
	}
}

func TestCache_SweepRemovesUnreadEntries(t *testing.T) {
	provider := metrics.NewBasicProvider()
	c := newTestCache(t, CacheConfig{
		TTL:           10 * time.Millisecond,
		SweepInterval: 20 * time.Millisecond,
		Metrics:       provider,
	})

	c.Set("k1", 1)
	c.Set("k2", 2)

	// no Get calls: only the sweep can reclaim these
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
	require.Equal(t, int64(2), provider.CounterValue("cache_expirations"))
}

func TestCache_CachedNilIsDistinctFromAbsent(t *testing.T) {
	c := newTestCache(t, CacheConfig{SweepInterval: time.Hour})

	c.Set("nil-value", nil)

	v, ok := c.Get("nil-value")
	require.True(t, ok, "a cached nil is a legitimate value")
	require.Nil(t, v)

	_, ok = c.Get("never-set")
	require.False(t, ok)
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := NewCache(CacheConfig{SweepInterval: time.Millisecond})

	c.Close()
	c.Close()

	// entries remain readable after Close
	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := newTestCache(t, CacheConfig{MaxSize: 16, SweepInterval: 5 * time.Millisecond})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%24)
				if i%3 == 0 {
					c.Set(key, g)
				} else {
					c.Get(key)
				}
			}
		}(g)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 16)
}
