package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interception outcomes per strategy
	InterceptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_intercept_total",
			Help: "Total number of intercepted requests",
		},
		[]string{"strategy", "outcome"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"strategy"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"strategy"},
	)

	// Generation lifecycle
	GenerationInstalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_generation_installs_total",
			Help: "Generation install attempts by result",
		},
		[]string{"result"},
	)

	GenerationActivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_generation_activations_total",
			Help: "Total number of generation activations",
		},
	)

	BucketsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_buckets_purged_total",
			Help: "Stale generation buckets deleted on activation",
		},
	)

	PrecacheFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_precache_failures_total",
			Help: "Precache manifest entries that failed to install",
		},
	)

	// Notifications
	NotificationsShown = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_notifications_shown_total",
			Help: "Total number of notifications displayed",
		},
	)

	NotificationClicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_notification_clicks_total",
			Help: "Notification clicks by action",
		},
		[]string{"action"},
	)

	// Fetch latency per strategy
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edge_fetch_duration_seconds",
			Help:    "Duration of intercepted request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	// Cache store capacity (in-memory backend only)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "edge_cache_capacity_bytes",
			Help: "In-memory cache capacity in bytes",
		},
		[]string{"backend"},
	)

	CacheUsed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "edge_cache_used_bytes",
			Help: "In-memory cache used space in bytes",
		},
		[]string{"backend"},
	)

	// Delivery widget
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_delivery_quotes_total",
			Help: "Delivery quote attempts by result",
		},
		[]string{"result"},
	)
)

// RecordIntercept records one intercepted request with its outcome.
func RecordIntercept(strategy, outcome string) {
	InterceptTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordCacheHit records a cache hit for a strategy.
func RecordCacheHit(strategy string) {
	CacheHits.WithLabelValues(strategy).Inc()
}

// RecordCacheMiss records a cache miss for a strategy.
func RecordCacheMiss(strategy string) {
	CacheMisses.WithLabelValues(strategy).Inc()
}

// RecordInstall records a generation install attempt.
func RecordInstall(result string) {
	GenerationInstalls.WithLabelValues(result).Inc()
}

// RecordActivation records a generation activation and the buckets it purged.
func RecordActivation(purged int) {
	GenerationActivations.Inc()
	BucketsPurged.Add(float64(purged))
}

// RecordPrecacheFailure records a failed precache manifest entry.
func RecordPrecacheFailure() {
	PrecacheFailures.Inc()
}

// RecordNotificationShown records a displayed notification.
func RecordNotificationShown() {
	NotificationsShown.Inc()
}

// RecordNotificationClick records a notification click by action.
func RecordNotificationClick(action string) {
	if action == "" {
		action = "default"
	}
	NotificationClicks.WithLabelValues(action).Inc()
}

// UpdateCacheCapacity updates in-memory cache capacity metrics.
func UpdateCacheCapacity(backend string, capacity, used int64) {
	CacheCapacity.WithLabelValues(backend).Set(float64(capacity))
	CacheUsed.WithLabelValues(backend).Set(float64(used))
}

// RecordQuote records a delivery quote attempt result.
func RecordQuote(result string) {
	QuoteRequests.WithLabelValues(result).Inc()
}

// TimeFetch returns a timer function for measuring request handling duration.
func TimeFetch(strategy string) func() {
	timer := prometheus.NewTimer(FetchDuration.WithLabelValues(strategy))
	return func() {
		timer.ObserveDuration()
	}
}
