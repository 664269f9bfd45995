package intercept

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
)

// Ensure HTTPFetcher implements interfaces.Fetcher
var _ interfaces.Fetcher = (*HTTPFetcher)(nil)

// hop-by-hop headers are connection-scoped and must not be forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// HTTPFetcher fetches requests over the network. Relative request URLs
// resolve against the storefront origin; absolute URLs (CDN style/script
// dependencies from the precache manifest) go out as-is.
type HTTPFetcher struct {
	client *http.Client
	origin *url.URL
	logger *zap.Logger
}

// NewHTTPFetcher creates a fetcher bound to the given origin URL.
func NewHTTPFetcher(originURL string, timeout time.Duration, logger *zap.Logger) (*HTTPFetcher, error) {
	origin, err := url.Parse(originURL)
	if err != nil {
		return nil, fmt.Errorf("invalid origin URL %q: %w", originURL, err)
	}

	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("origin URL %q must include scheme and host", originURL)
	}

	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		origin: origin,
		logger: logger,
	}, nil
}

// OriginHost returns the configured origin host, used for same-origin checks.
func (f *HTTPFetcher) OriginHost() string {
	return f.origin.Host
}

// Fetch forwards the request to the network and returns the raw response.
func (f *HTTPFetcher) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	target := *req.URL
	if target.Host == "" {
		target.Scheme = f.origin.Scheme
		target.Host = f.origin.Host
	}

	out, err := http.NewRequestWithContext(ctx, req.Method, target.String(), req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	out.Header = req.Header.Clone()
	for _, h := range hopHeaders {
		out.Header.Del(h)
	}

	resp, err := f.client.Do(out)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Fetched from network",
		zap.String("url", target.String()), zap.Int("status", resp.StatusCode))

	return resp, nil
}
