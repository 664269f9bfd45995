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

// Ensure NetworkFirst implements interfaces.Strategy
var _ interfaces.Strategy = (*NetworkFirst)(nil)

// NetworkFirst always tries the network, refreshing the cache on success, and
// falls back to a cached copy only when the network fails.
type NetworkFirst struct {
	store      interfaces.BucketStore
	generation interfaces.GenerationProvider
	keys       interfaces.KeyBuilder
	fetcher    interfaces.Fetcher
	originHost string
	logger     *zap.Logger
}

// NewNetworkFirst creates a network-first strategy.
func NewNetworkFirst(store interfaces.BucketStore, generation interfaces.GenerationProvider,
	keys interfaces.KeyBuilder, fetcher interfaces.Fetcher, originHost string, logger *zap.Logger) *NetworkFirst {
	return &NetworkFirst{
		store:      store,
		generation: generation,
		keys:       keys,
		fetcher:    fetcher,
		originHost: originHost,
		logger:     logger,
	}
}

// Name returns the strategy identifier.
func (s *NetworkFirst) Name() models.StrategyName {
	return models.StrategyNetworkFirst
}

// Serve resolves the request, preferring the network.
func (s *NetworkFirst) Serve(ctx context.Context, req *http.Request) (*models.CacheEntry, error) {
	key, err := s.keys.Build(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	bucket := s.generation.Current()

	resp, fetchErr := s.fetcher.Fetch(ctx, req)
	if fetchErr == nil {
		entry, err := models.EntryFromResponse(req, resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if Cacheable(req, entry, s.originHost) {
			s.store.Set(bucket, key, entry)
		}

		return entry, nil
	}

	if entry, found := s.store.Get(bucket, key); found {
		s.logger.Debug("Network failed, serving cached copy",
			zap.String("key", key), zap.Error(fetchErr))
		metrics.RecordIntercept(string(s.Name()), "fallback_cache")
		return entry, nil
	}

	return nil, fmt.Errorf("network fetch failed with no cached fallback: %w", fetchErr)
}
