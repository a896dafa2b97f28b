package cache

import (
	"context"
	"time"
)

// Entry is a cached exchange rate for an ordered currency pair.
type Entry struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RateCache stores exchange rates keyed by the ordered pair key "FROM-TO".
// Expiry is enforced lazily on the read path: Get must treat an entry older
// than the cache's TTL as absent and remove it. There is no background sweep.
type RateCache interface {
	// Get returns the entry for key, or ok=false when the key is absent or
	// its entry has outlived the TTL.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Put unconditionally overwrites any existing entry for key.
	Put(ctx context.Context, key string, rate float64, fetchedAt time.Time) error
}
