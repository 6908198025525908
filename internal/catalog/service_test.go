package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sallati/backend-sallati/internal/lock"
)

type countingLoader struct {
	snap  *Snapshot
	err   error
	calls int
}

func (l *countingLoader) LoadSnapshot(_ context.Context, _ time.Time) (*Snapshot, error) {
	l.calls++
	return l.snap, l.err
}

func newServiceFixture(t *testing.T) (*Service, *countingLoader) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	unit := testUnit("11111111-0000-0000-0000-000000000001", "10.00")
	snap, err := NewSnapshot([]ProductUnit{unit}, nil, testNow)
	require.NoError(t, err)

	loader := &countingLoader{snap: snap}
	svc := &Service{
		Repo:    loader,
		Cache:   NewCache(client, time.Minute),
		Refresh: &lock.Locker{R: client, RetryBackoff: 5 * time.Millisecond},
	}
	return svc, loader
}

func TestServiceSnapshotCacheAside(t *testing.T) {
	svc, loader := newServiceFixture(t)
	ctx := context.Background()

	first, err := svc.Snapshot(ctx, testNow)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, loader.calls)

	// Second call is served from Redis without touching the loader.
	second, err := svc.Snapshot(ctx, testNow)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, loader.calls)
}

func TestServiceSnapshotWithoutCache(t *testing.T) {
	unit := testUnit("11111111-0000-0000-0000-000000000001", "10.00")
	snap, err := NewSnapshot([]ProductUnit{unit}, nil, testNow)
	require.NoError(t, err)

	loader := &countingLoader{snap: snap}
	svc := &Service{Repo: loader}

	for i := 0; i < 3; i++ {
		got, err := svc.Snapshot(context.Background(), testNow)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
	assert.Equal(t, 3, loader.calls)
}

func TestServiceSnapshotPropagatesLoadError(t *testing.T) {
	svc, loader := newServiceFixture(t)
	loader.snap = nil
	loader.err = errors.New("database unavailable")

	_, err := svc.Snapshot(context.Background(), testNow)
	require.Error(t, err)
	assert.Equal(t, loader.err.Error(), err.Error())
}
