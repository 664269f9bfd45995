package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"storefront-edge/internal/bucket"
	"storefront-edge/internal/cache"
	"storefront-edge/internal/config"
	"storefront-edge/internal/delivery"
	"storefront-edge/internal/events"
	"storefront-edge/internal/generation"
	"storefront-edge/internal/httpserver"
	"storefront-edge/internal/intercept"
	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/models"
	"storefront-edge/internal/notify"
	"storefront-edge/internal/policy"
	"storefront-edge/internal/scheduler"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger

	Store      interfaces.BucketStore
	KeyBuilder interfaces.KeyBuilder
	Fetcher    *intercept.HTTPFetcher

	Generation  *generation.Manager
	Interceptor *intercept.Interceptor
	Dispatcher  *events.Dispatcher
	Widget      *delivery.Widget
	Registrar   *scheduler.Registrar

	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Bucket store and fetcher
// 4. Generation manager, routing table, interceptor
// 5. Widget, notification service, event dispatcher
// 6. HTTP server (uses all above components)
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	root.HTTPServer = httpserver.NewServer(root.Interceptor, root.Dispatcher, root.Widget, root.Logger)

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.Load(os.Getenv("EDGE_CONFIG_FILE"), r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initCacheComponents initializes the bucket store, key builder, and fetcher.
func (r *CompositionRoot) initCacheComponents() error {
	switch r.Config.Store.Backend {
	case "redis":
		store, err := bucket.NewRedisStore(bucket.RedisOptions{
			Addr:     r.Config.Store.RedisAddr,
			Password: r.Config.Store.RedisPassword,
			DB:       r.Config.Store.RedisDB,
		}, r.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		r.Store = store
	default:
		r.Store = bucket.NewMemoryStore(r.Config.Store.SizeMB, r.Config.Store.LifeWindow, r.Logger)
	}

	r.KeyBuilder = cache.NewKeyBuilder()

	fetcher, err := intercept.NewHTTPFetcher(r.Config.Origin.URL, r.Config.Origin.FetchTimeout, r.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize fetcher: %w", err)
	}
	r.Fetcher = fetcher

	return nil
}

// initServices wires the generation manager, interceptor, widget, and
// event dispatcher.
func (r *CompositionRoot) initServices() error {
	r.Generation = generation.NewManager(r.Config.Generation.Name, r.Config.Generation.Manifest,
		r.Store, r.Fetcher, r.KeyBuilder, r.Logger)

	table := policy.NewTable(r.Logger)
	for _, route := range r.Config.Routes {
		strategy, err := r.buildStrategy(route.Strategy)
		if err != nil {
			return err
		}
		if err := table.Add(route.Pattern, strategy); err != nil {
			return err
		}
	}

	r.Interceptor = intercept.NewInterceptor(r.Store, r.Generation, r.KeyBuilder,
		r.Fetcher, table, r.Fetcher.OriginHost(), r.Logger)

	quoteClient := delivery.NewHTTPClient(r.Config.Delivery.BaseURL, r.Config.Delivery.Timeout, r.Logger)
	r.Widget = delivery.NewWidget(context.Background(), quoteClient, r.Logger)

	notifier := notify.NewService(notify.NewLogDisplayer(r.Logger), notify.NewLogClientOpener(r.Logger), r.Logger)
	r.Registrar = scheduler.NewRegistrar(r.Logger)

	r.Dispatcher = events.NewDispatcher(r.Logger)
	events.RegisterHandlers(r.Dispatcher, r.Generation, notifier, r.Registrar, r.Logger)

	return nil
}

// buildStrategy resolves a configured strategy name to its implementation.
func (r *CompositionRoot) buildStrategy(name models.StrategyName) (interfaces.Strategy, error) {
	switch name {
	case models.StrategyCacheFirst:
		return policy.NewCacheFirst(r.Store, r.Generation, r.KeyBuilder,
			r.Fetcher, r.Fetcher.OriginHost(), r.Logger), nil
	case models.StrategyNetworkFirst:
		return policy.NewNetworkFirst(r.Store, r.Generation, r.KeyBuilder,
			r.Fetcher, r.Fetcher.OriginHost(), r.Logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Bootstrap installs and activates the configured generation. An install
// failure leaves the edge in passthrough mode rather than activating a
// partial cache.
func (r *CompositionRoot) Bootstrap(ctx context.Context) {
	if err := r.Dispatcher.Dispatch(ctx, models.Event{Kind: models.EventInstall}); err != nil {
		r.Logger.Warn("Install failed, staying in passthrough mode", zap.Error(err))
		return
	}

	if err := r.Dispatcher.Dispatch(ctx, models.Event{
		Kind: models.EventActivate,
		Data: json.RawMessage(`{}`),
	}); err != nil {
		r.Logger.Error("Activation failed", zap.Error(err))
	}
}

// Cleanup releases held resources.
func (r *CompositionRoot) Cleanup() error {
	r.Registrar.Wait()
	return r.Store.Close()
}
