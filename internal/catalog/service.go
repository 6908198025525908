package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sallati/backend-sallati/internal/lock"
)

// Loader abstracts snapshot retrieval so tests can supply fixtures without a
// database.
type Loader interface {
	LoadSnapshot(ctx context.Context, now time.Time) (*Snapshot, error)
}

// Service provides the current catalog snapshot with cache-aside semantics.
// Cache failures degrade to a repository read and are logged, never surfaced:
// pricing must stay available while Redis is down.
type Service struct {
	Repo   Loader
	Cache  *Cache
	Logger zerolog.Logger

	// Refresh serialises snapshot rebuilds across instances so a cache
	// expiry does not stampede Postgres. Optional.
	Refresh *lock.Locker
}

const refreshLockKey = "catalog:snapshot:refresh"

// Snapshot returns the catalog snapshot for the given evaluation instant.
func (s *Service) Snapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("catalog service not configured")
	}
	snap, hit, err := s.Cache.Get(ctx)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("catalog cache read failed")
	}
	if hit {
		return snap, nil
	}

	if s.Refresh == nil {
		return s.rebuild(ctx, now)
	}

	err = s.Refresh.WithLock(ctx, refreshLockKey, 10*time.Second, func(ctx context.Context) error {
		// Another instance may have rebuilt while this one waited.
		if cached, ok, cacheErr := s.Cache.Get(ctx); cacheErr == nil && ok {
			snap = cached
			return nil
		}
		rebuilt, rebuildErr := s.rebuild(ctx, now)
		if rebuildErr != nil {
			return rebuildErr
		}
		snap = rebuilt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) rebuild(ctx context.Context, now time.Time) (*Snapshot, error) {
	snap, err := s.Repo.LoadSnapshot(ctx, now)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, snap); err != nil {
		s.Logger.Warn().Err(err).Msg("catalog cache write failed")
	}
	return snap, nil
}
