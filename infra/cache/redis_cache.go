package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wayfarer-app/wayfarer/pkg/cache"
)

// RedisRateCache implements cache.RateCache on Redis. Expiry is delegated to
// Redis key TTLs, which gives the same observable behavior as read-triggered
// eviction: an expired entry is simply absent on the next read.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisRateCache creates a Redis-backed rate cache from client options.
func NewRedisRateCache(
	opt *redis.Options,
	prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisRateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisRateCache) key(key string) string {
	return r.prefix + key
}

// Get returns the entry for key, reporting absent on expiry or cache miss.
func (r *RedisRateCache) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("redis cache miss", "key", key)
		return cache.Entry{}, false, nil
	}
	if err != nil {
		r.logger.Error("redis cache get failed", "key", key, "error", err)
		return cache.Entry{}, false, err
	}

	var entry cache.Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		r.logger.Error("redis cache entry corrupt", "key", key, "error", err)
		return cache.Entry{}, false, err
	}
	return entry, true, nil
}

// Put overwrites any existing entry for key with the cache TTL.
func (r *RedisRateCache) Put(ctx context.Context, key string, rate float64, fetchedAt time.Time) error {
	data, err := json.Marshal(cache.Entry{Rate: rate, FetchedAt: fetchedAt})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		r.logger.Error("redis cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}

var _ cache.RateCache = (*RedisRateCache)(nil)
