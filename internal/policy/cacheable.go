package policy

import (
	"net/http"
	"net/url"
	"strings"

	"storefront-edge/internal/models"
)

// Cacheable reports whether a fetched entry may be written to the cache.
// Only GET requests with a 200, same-origin, plain response qualify; errors
// and cross-origin responses pass through uncached.
func Cacheable(req *http.Request, entry *models.CacheEntry, originHost string) bool {
	if req.Method != http.MethodGet {
		return false
	}

	if entry.Status != http.StatusOK {
		return false
	}

	if entry.Header.Get("Set-Cookie") != "" {
		return false
	}

	return sameOrigin(entry.URL, originHost)
}

// IsDocument reports whether the request targets a top-level navigable page.
// Sec-Fetch-Dest is authoritative where present; the Accept header is the
// fallback for clients that do not send fetch metadata.
func IsDocument(req *http.Request) bool {
	if dest := req.Header.Get("Sec-Fetch-Dest"); dest != "" {
		return dest == "document"
	}

	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

// sameOrigin compares the final response URL's host against the origin.
// Relative URLs resolve against the origin and therefore always match.
func sameOrigin(rawURL, originHost string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if u.Host == "" {
		return true
	}

	return strings.EqualFold(u.Host, originHost)
}
