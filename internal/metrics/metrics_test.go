package metrics

import (
	"testing"
)

func TestMetrics(t *testing.T) {
	// Metrics are package-level promauto variables; these calls verify the
	// label sets line up and nothing panics.

	t.Run("RecordIntercept", func(t *testing.T) {
		RecordIntercept("default", "cache_hit")
		RecordIntercept("network-first", "fallback_cache")
	})

	t.Run("RecordCacheHitMiss", func(t *testing.T) {
		RecordCacheHit("cache-first")
		RecordCacheMiss("cache-first")
	})

	t.Run("RecordInstall", func(t *testing.T) {
		RecordInstall("success")
		RecordInstall("failure")
	})

	t.Run("RecordActivation", func(t *testing.T) {
		RecordActivation(2)
	})

	t.Run("RecordPrecacheFailure", func(t *testing.T) {
		RecordPrecacheFailure()
	})

	t.Run("RecordNotification", func(t *testing.T) {
		RecordNotificationShown()
		RecordNotificationClick("view")
		RecordNotificationClick("")
	})

	t.Run("UpdateCacheCapacity", func(t *testing.T) {
		UpdateCacheCapacity("memory", 1000000, 500000)
	})

	t.Run("RecordQuote", func(t *testing.T) {
		RecordQuote("success")
		RecordQuote("network_error")
	})

	t.Run("TimeFetch", func(t *testing.T) {
		timer := TimeFetch("default")
		timer()
	})
}
