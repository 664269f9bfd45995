package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-edge/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("", zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, ":8545", cfg.Server.ListenAddr)
	assert.Equal(t, "biryani-club-v2", cfg.Generation.Name)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Store.LifeWindow)
	assert.Contains(t, cfg.Generation.Manifest, "/")
	assert.Contains(t, cfg.Generation.Manifest, "/static/css/style.css")
	// Delivery endpoints default to the origin.
	assert.Equal(t, cfg.Origin.URL, cfg.Delivery.BaseURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":9000"
origin:
  url: "http://storefront.local"
generation:
  name: "biryani-club-v3"
  manifest:
    - "/"
    - "/menu"
store:
  backend: "redis"
  redis_addr: "redis.internal:6379"
routes:
  - pattern: "^/static/"
    strategy: "cache-first"
  - pattern: "^/api/"
    strategy: "network-first"
`)

	cfg, err := Load(path, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, "biryani-club-v3", cfg.Generation.Name)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Store.RedisAddr)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, models.StrategyCacheFirst, cfg.Routes[0].Strategy)
	assert.Equal(t, models.StrategyNetworkFirst, cfg.Routes[1].Strategy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
generation:
  name: "biryani-club-v2"
`)

	t.Setenv("EDGE_GENERATION", "biryani-club-v4")
	t.Setenv("EDGE_STORE_BACKEND", "redis")

	cfg, err := Load(path, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "biryani-club-v4", cfg.Generation.Name)
	assert.Equal(t, "redis", cfg.Store.Backend)
}

func TestLoad_InvalidBackendRejected(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: "memcached"
`)

	_, err := Load(path, zap.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_InvalidStrategyRejected(t *testing.T) {
	path := writeConfig(t, `
routes:
  - pattern: "^/api/"
    strategy: "stale-while-revalidate"
`)

	_, err := Load(path, zap.NewNop())

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml", zap.NewNop())

	assert.Error(t, err)
}
