package interfaces

import (
	"context"
	"net/http"
)

//go:generate mockgen -package=mock -source=fetcher.go -destination=mock/fetcher.go

// Fetcher performs a network fetch against the storefront origin. Relative
// URLs resolve against the configured origin; absolute URLs (third-party
// style/script dependencies) are fetched as-is.
type Fetcher interface {
	Fetch(ctx context.Context, req *http.Request) (*http.Response, error)
}
