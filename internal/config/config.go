package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storefront-edge/internal/models"
)

// DefaultGeneration is the cache generation in service until a deploy bumps
// it. Bumping the name is the sole cache-invalidation mechanism.
const DefaultGeneration = "biryani-club-v2"

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr" env:"EDGE_LISTEN_ADDR" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"EDGE_SHUTDOWN_TIMEOUT"`
}

// OriginConfig points at the storefront this edge fronts.
type OriginConfig struct {
	URL          string        `yaml:"url" env:"EDGE_ORIGIN_URL" validate:"required,url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"EDGE_ORIGIN_FETCH_TIMEOUT"`
}

// GenerationConfig names the current cache generation and its precache
// manifest.
type GenerationConfig struct {
	Name     string   `yaml:"name" env:"EDGE_GENERATION" validate:"required"`
	Manifest []string `yaml:"manifest" env:"EDGE_PRECACHE_MANIFEST" envSeparator:","`
}

// StoreConfig selects and tunes the bucket store backend.
type StoreConfig struct {
	Backend    string        `yaml:"backend" env:"EDGE_STORE_BACKEND" validate:"oneof=memory redis"`
	LifeWindow time.Duration `yaml:"life_window" env:"EDGE_STORE_LIFE_WINDOW"`
	SizeMB     int           `yaml:"size_mb" env:"EDGE_STORE_SIZE_MB"`

	RedisAddr     string `yaml:"redis_addr" env:"EDGE_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"EDGE_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"EDGE_REDIS_DB"`
}

// RouteConfig binds one URL pattern to a named caching strategy.
type RouteConfig struct {
	Pattern  string              `yaml:"pattern" validate:"required"`
	Strategy models.StrategyName `yaml:"strategy" validate:"required"`
}

// DeliveryConfig points at the delivery quote endpoints.
type DeliveryConfig struct {
	BaseURL string        `yaml:"base_url" env:"EDGE_DELIVERY_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"EDGE_DELIVERY_TIMEOUT"`
}

// Config is the full edge configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Origin     OriginConfig     `yaml:"origin"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
	Routes     []RouteConfig    `yaml:"routes"`
	Delivery   DeliveryConfig   `yaml:"delivery"`
}

// Load reads the YAML file, overlays environment variables, applies
// defaults, and validates the result. An empty path skips the file and
// builds the configuration from environment and defaults alone.
func Load(configPath string, logger *zap.Logger) (*Config, error) {
	var config Config

	if configPath != "" {
		logger.Info("Loading configuration", zap.String("path", configPath))

		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer func() { _ = file.Close() }()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	config.applyDefaults()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8545"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.Origin.URL == "" {
		c.Origin.URL = "http://localhost:5000"
	}
	if c.Origin.FetchTimeout == 0 {
		c.Origin.FetchTimeout = 10 * time.Second
	}

	if c.Generation.Name == "" {
		c.Generation.Name = DefaultGeneration
	}
	if len(c.Generation.Manifest) == 0 {
		c.Generation.Manifest = defaultManifest()
	}

	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.Store.LifeWindow == 0 {
		c.Store.LifeWindow = 24 * time.Hour
	}
	if c.Store.SizeMB == 0 {
		c.Store.SizeMB = 64
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = "localhost:6379"
	}

	if c.Delivery.BaseURL == "" {
		c.Delivery.BaseURL = c.Origin.URL
	}
	if c.Delivery.Timeout == 0 {
		c.Delivery.Timeout = 5 * time.Second
	}
}

// defaultManifest lists the app shell plus the page's third-party style and
// script dependencies. Every entry must fetch cleanly or install fails.
func defaultManifest() []string {
	return []string{
		"/",
		"/menu",
		"/static/css/style.css",
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css",
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js",
	}
}
