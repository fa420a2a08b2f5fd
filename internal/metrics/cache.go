package metrics

import (
	"context"
	"time"

	"github.com/kleinsmk/Pode/internal/core"
)

// CacheWrapper serves gauge source counts through a cache so the
// periodic metrics refresh does not hit the database on every tick.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a cached reader over the store counts.
func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetRegisteredUsersCount returns the user count, cached for ttl.
func (w *CacheWrapper) GetRegisteredUsersCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return w.cache.GetWithFetch(
		ctx,
		"users:registered",
		ttl,
		func(_ context.Context, _ string) (int64, error) {
			return w.store.CountUsers()
		},
	)
}
