package policy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-edge/internal/models"
)

func entryWith(status int, url string) *models.CacheEntry {
	return &models.CacheEntry{
		Method: http.MethodGet,
		URL:    url,
		Status: status,
		Header: http.Header{},
	}
}

func TestCacheable(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/menu", nil)
	post := httptest.NewRequest(http.MethodPost, "/calculate-delivery", nil)

	tests := []struct {
		name  string
		req   *http.Request
		entry *models.CacheEntry
		want  bool
	}{
		{
			name:  "GET 200 same-origin",
			req:   get,
			entry: entryWith(http.StatusOK, "http://storefront.local/menu"),
			want:  true,
		},
		{
			name:  "relative URL counts as same-origin",
			req:   get,
			entry: entryWith(http.StatusOK, "/menu"),
			want:  true,
		},
		{
			name:  "POST is never cacheable",
			req:   post,
			entry: entryWith(http.StatusOK, "http://storefront.local/calculate-delivery"),
			want:  false,
		},
		{
			name:  "non-200 is not cacheable",
			req:   get,
			entry: entryWith(http.StatusNotFound, "http://storefront.local/menu"),
			want:  false,
		},
		{
			name:  "redirect status is not cacheable",
			req:   get,
			entry: entryWith(http.StatusFound, "http://storefront.local/menu"),
			want:  false,
		},
		{
			name:  "cross-origin is not cacheable",
			req:   get,
			entry: entryWith(http.StatusOK, "https://cdn.jsdelivr.net/bootstrap.min.css"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cacheable(tt.req, tt.entry, "storefront.local"))
		})
	}
}

func TestCacheable_SetCookieBlocksCaching(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	entry := entryWith(http.StatusOK, "http://storefront.local/menu")
	entry.Header.Set("Set-Cookie", "session=abc")

	assert.False(t, Cacheable(req, entry, "storefront.local"))
}

func TestIsDocument(t *testing.T) {
	t.Run("sec-fetch-dest document", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Sec-Fetch-Dest", "document")
		assert.True(t, IsDocument(req))
	})

	t.Run("sec-fetch-dest overrides accept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
		req.Header.Set("Sec-Fetch-Dest", "script")
		req.Header.Set("Accept", "text/html,*/*")
		assert.False(t, IsDocument(req))
	})

	t.Run("accept html fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/menu", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		assert.True(t, IsDocument(req))
	})

	t.Run("asset request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil)
		req.Header.Set("Accept", "text/css,*/*;q=0.1")
		assert.False(t, IsDocument(req))
	})
}
