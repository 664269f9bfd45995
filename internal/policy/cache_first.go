package policy

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
)

// Ensure CacheFirst implements interfaces.Strategy
var _ interfaces.Strategy = (*CacheFirst)(nil)

// CacheFirst serves a cached copy unconditionally when one exists and only
// reaches for the network on a miss. Suited to static assets.
type CacheFirst struct {
	store      interfaces.BucketStore
	generation interfaces.GenerationProvider
	keys       interfaces.KeyBuilder
	fetcher    interfaces.Fetcher
	originHost string
	logger     *zap.Logger
}

// NewCacheFirst creates a cache-first strategy.
func NewCacheFirst(store interfaces.BucketStore, generation interfaces.GenerationProvider,
	keys interfaces.KeyBuilder, fetcher interfaces.Fetcher, originHost string, logger *zap.Logger) *CacheFirst {
	return &CacheFirst{
		store:      store,
		generation: generation,
		keys:       keys,
		fetcher:    fetcher,
		originHost: originHost,
		logger:     logger,
	}
}

// Name returns the strategy identifier.
func (s *CacheFirst) Name() models.StrategyName {
	return models.StrategyCacheFirst
}

// Serve resolves the request, preferring the cache.
func (s *CacheFirst) Serve(ctx context.Context, req *http.Request) (*models.CacheEntry, error) {
	key, err := s.keys.Build(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	bucket := s.generation.Current()

	if entry, found := s.store.Get(bucket, key); found {
		metrics.RecordCacheHit(string(s.Name()))
		return entry, nil
	}
	metrics.RecordCacheMiss(string(s.Name()))

	resp, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("network fetch failed: %w", err)
	}

	entry, err := models.EntryFromResponse(req, resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if Cacheable(req, entry, s.originHost) {
		s.store.Set(bucket, key, entry)
	}

	return entry, nil
}
