package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/cache"
)

// MemoryRateCache implements cache.RateCache with an in-process map. Expired
// entries are tombstoned on read; there is no background sweep, so the map
// stays bounded by the number of currency pairs actually requested.
type MemoryRateCache struct {
	ttl     time.Duration
	entries map[string]cache.Entry
	mu      sync.Mutex
	now     func() time.Time
}

// NewMemoryRateCache creates an in-memory cache with the given TTL.
func NewMemoryRateCache(ttl time.Duration) *MemoryRateCache {
	return &MemoryRateCache{
		ttl:     ttl,
		entries: make(map[string]cache.Entry),
		now:     time.Now,
	}
}

// Get returns the entry for key. An entry older than the TTL is removed and
// reported absent.
func (c *MemoryRateCache) Get(_ context.Context, key string) (cache.Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return cache.Entry{}, false, nil
	}
	if c.now().Sub(entry.FetchedAt) > c.ttl {
		delete(c.entries, key)
		return cache.Entry{}, false, nil
	}
	return entry, true, nil
}

// Put overwrites any existing entry for key.
func (c *MemoryRateCache) Put(_ context.Context, key string, rate float64, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cache.Entry{Rate: rate, FetchedAt: fetchedAt}
	return nil
}

var _ cache.RateCache = (*MemoryRateCache)(nil)
