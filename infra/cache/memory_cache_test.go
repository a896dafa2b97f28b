package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateCache_PutGet(t *testing.T) {
	c := NewMemoryRateCache(time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, c.Put(ctx, "USD-EUR", 0.925, now))

	entry, ok, err := c.Get(ctx, "USD-EUR")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.925, entry.Rate, 0.0000001)
	assert.Equal(t, now, entry.FetchedAt)
}

func TestMemoryRateCache_MissOnUnknownKey(t *testing.T) {
	c := NewMemoryRateCache(time.Hour)

	_, ok, err := c.Get(context.Background(), "USD-EUR")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRateCache_ExpiredEntryEvictedOnRead(t *testing.T) {
	c := NewMemoryRateCache(time.Hour)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, c.Put(ctx, "USD-EUR", 0.925, base))

	// Advance the clock past the TTL.
	c.now = func() time.Time { return base.Add(time.Hour + time.Minute) }

	_, ok, err := c.Get(ctx, "USD-EUR")
	require.NoError(t, err)
	assert.False(t, ok)

	// The read tombstoned the entry, so a fresh write at the new clock works.
	require.NoError(t, c.Put(ctx, "USD-EUR", 0.95, c.now()))
	entry, ok, err := c.Get(ctx, "USD-EUR")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.95, entry.Rate, 0.0000001)
}

func TestMemoryRateCache_EntryFreshJustWithinTTL(t *testing.T) {
	c := NewMemoryRateCache(time.Hour)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, c.Put(ctx, "USD-EUR", 0.925, base))
	c.now = func() time.Time { return base.Add(time.Hour) }

	// now - fetchedAt == TTL exactly is still fresh.
	_, ok, err := c.Get(ctx, "USD-EUR")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRateCache_PutOverwrites(t *testing.T) {
	c := NewMemoryRateCache(time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, c.Put(ctx, "USD-EUR", 0.90, now.Add(-time.Minute)))
	require.NoError(t, c.Put(ctx, "USD-EUR", 0.925, now))

	entry, ok, err := c.Get(ctx, "USD-EUR")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.925, entry.Rate, 0.0000001)
	assert.Equal(t, now, entry.FetchedAt)
}
