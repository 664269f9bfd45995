package cache

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-edge/internal/interfaces"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl canonizes requests into "METHOD path?query" cache keys.
// Query parameters are re-encoded in sorted order so equivalent URLs collapse
// to one key; fragments never reach the server and are dropped.
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance.
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates the cache key for a request.
func (kb *KeyBuilderImpl) Build(req *http.Request) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	if req.URL == nil {
		return "", errors.New("request URL cannot be nil")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	path := req.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	// url.Values.Encode sorts by key, normalizing parameter order.
	query := req.URL.Query().Encode()
	if query != "" {
		return fmt.Sprintf("%s %s?%s", method, path, query), nil
	}

	return fmt.Sprintf("%s %s", method, path), nil
}
