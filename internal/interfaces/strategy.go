package interfaces

import (
	"context"
	"net/http"

	"storefront-edge/internal/models"
)

//go:generate mockgen -package=mock -source=strategy.go -destination=mock/strategy.go

// Strategy is a named, reusable caching policy. Strategies are selectable per
// route pattern independently of the default interception path.
type Strategy interface {
	Name() models.StrategyName

	// Serve resolves the request to a replayable entry, consulting the cache
	// and/or the network according to the policy.
	Serve(ctx context.Context, req *http.Request) (*models.CacheEntry, error)
}

// GenerationProvider exposes the name of the currently active cache
// generation and whether interception has been taken over.
type GenerationProvider interface {
	Current() string
	Active() bool
}
