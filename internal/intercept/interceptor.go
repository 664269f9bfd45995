package intercept

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
	"storefront-edge/internal/policy"
)

// strategyDefault labels the built-in interception path in metrics, as
// opposed to the named route-table strategies.
const strategyDefault = "default"

// Interceptor applies the per-request caching policy to every outgoing
// request once the current generation is active:
//
//   - cached document requests are refreshed from the network when possible
//     and served from cache when the network fails;
//   - cached non-document requests are served from cache unconditionally;
//   - uncached requests go to the network, and cacheable responses are
//     written back before being returned.
//
// Route-table overrides take precedence over this default path.
type Interceptor struct {
	store      interfaces.BucketStore
	generation interfaces.GenerationProvider
	keys       interfaces.KeyBuilder
	fetcher    interfaces.Fetcher
	routes     *policy.Table
	originHost string
	logger     *zap.Logger
}

// NewInterceptor creates the default interception path.
func NewInterceptor(store interfaces.BucketStore, generation interfaces.GenerationProvider,
	keys interfaces.KeyBuilder, fetcher interfaces.Fetcher, routes *policy.Table,
	originHost string, logger *zap.Logger) *Interceptor {
	return &Interceptor{
		store:      store,
		generation: generation,
		keys:       keys,
		fetcher:    fetcher,
		routes:     routes,
		originHost: originHost,
		logger:     logger,
	}
}

// Serve resolves one intercepted request to a replayable entry.
func (i *Interceptor) Serve(ctx context.Context, req *http.Request) (*models.CacheEntry, error) {
	// Until the generation activates, requests pass straight through.
	if !i.generation.Active() {
		defer metrics.TimeFetch(strategyDefault)()
		entry, err := i.fetchEntry(ctx, req)
		if err != nil {
			metrics.RecordIntercept(strategyDefault, "error")
			return nil, err
		}
		metrics.RecordIntercept(strategyDefault, "passthrough")
		return entry, nil
	}

	if s, ok := i.routes.Match(req); ok {
		defer metrics.TimeFetch(string(s.Name()))()
		return s.Serve(ctx, req)
	}

	defer metrics.TimeFetch(strategyDefault)()

	key, err := i.keys.Build(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	bucket := i.generation.Current()
	cached, found := i.store.Get(bucket, key)

	if found && policy.IsDocument(req) {
		// Navigations prefer a fresh copy but must survive offline.
		fresh, err := i.fetchEntry(ctx, req)
		if err != nil {
			i.logger.Debug("Document refresh failed, serving cached copy",
				zap.String("key", key), zap.Error(err))
			metrics.RecordIntercept(strategyDefault, "fallback_cache")
			return cached, nil
		}

		if policy.Cacheable(req, fresh, i.originHost) {
			i.store.Set(bucket, key, fresh)
		}

		metrics.RecordIntercept(strategyDefault, "network_refresh")
		return fresh, nil
	}

	if found {
		metrics.RecordCacheHit(strategyDefault)
		metrics.RecordIntercept(strategyDefault, "cache_hit")
		return cached, nil
	}

	metrics.RecordCacheMiss(strategyDefault)

	entry, err := i.fetchEntry(ctx, req)
	if err != nil {
		metrics.RecordIntercept(strategyDefault, "error")
		return nil, fmt.Errorf("network fetch failed: %w", err)
	}

	if policy.Cacheable(req, entry, i.originHost) {
		i.store.Set(bucket, key, entry)
		metrics.RecordIntercept(strategyDefault, "network_store")
	} else {
		metrics.RecordIntercept(strategyDefault, "network_passthrough")
	}

	return entry, nil
}

// fetchEntry performs a network fetch and drains it into an entry.
func (i *Interceptor) fetchEntry(ctx context.Context, req *http.Request) (*models.CacheEntry, error) {
	resp, err := i.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	entry, err := models.EntryFromResponse(req, resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return entry, nil
}
