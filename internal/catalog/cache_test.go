package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	unit := testUnit("11111111-0000-0000-0000-000000000001", "10.00")
	snap, err := NewSnapshot([]ProductUnit{unit}, nil, testNow)
	require.NoError(t, err)

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, snap))

	got, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, hit)

	// The deserialised snapshot must be fully usable, index included.
	cached, err := got.Unit(unit.ID)
	require.NoError(t, err)
	assert.True(t, unit.Price.Equal(cached.Price))
}

func TestCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	snap, err := NewSnapshot(nil, nil, testNow)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, snap))
	require.NoError(t, cache.Invalidate(ctx))

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Set(ctx, nil))
	require.NoError(t, cache.Invalidate(ctx))
}
