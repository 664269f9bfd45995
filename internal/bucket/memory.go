package bucket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
	"storefront-edge/internal/scheduler"
)

// Ensure MemoryStore implements interfaces.BucketStore
var _ interfaces.BucketStore = (*MemoryStore)(nil)

// MemoryStore implements BucketStore with one BigCache instance per bucket.
// Buckets are created lazily on first write and dropped whole on purge, which
// matches the generation lifecycle: entries never expire individually, they
// die with their bucket.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*bigcache.BigCache

	sizeMB           int
	lifeWindow       time.Duration
	logger           *zap.Logger
	metricsScheduler *scheduler.Scheduler
}

// NewMemoryStore creates an in-memory bucket store. sizeMB caps each bucket;
// lifeWindow bounds how long entries may outlive their last write.
func NewMemoryStore(sizeMB int, lifeWindow time.Duration, logger *zap.Logger) *MemoryStore {
	ms := &MemoryStore{
		buckets:    make(map[string]*bigcache.BigCache),
		sizeMB:     sizeMB,
		lifeWindow: lifeWindow,
		logger:     logger,
	}

	ms.metricsScheduler = scheduler.New(30*time.Second, ms.updateMetrics)
	ms.metricsScheduler.Start()

	return ms
}

// Buckets lists the names of all existing buckets in stable order.
func (ms *MemoryStore) Buckets() ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	names := make([]string, 0, len(ms.buckets))
	for name := range ms.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// DeleteBucket closes and removes a bucket with everything it holds.
func (ms *MemoryStore) DeleteBucket(name string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cache, ok := ms.buckets[name]
	if !ok {
		return nil
	}

	delete(ms.buckets, name)
	return cache.Close()
}

// Get retrieves an entry from the named bucket.
func (ms *MemoryStore) Get(bucket, key string) (*models.CacheEntry, bool) {
	ms.mu.RLock()
	cache, ok := ms.buckets[bucket]
	ms.mu.RUnlock()
	if !ok {
		return nil, false
	}

	data, err := cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		ms.logger.Warn("Failed to unmarshal cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		_ = cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores an entry in the named bucket, creating the bucket if absent.
// Overwrites on every call; last write wins.
func (ms *MemoryStore) Set(bucket, key string, entry *models.CacheEntry) {
	cache, err := ms.openBucket(bucket)
	if err != nil {
		ms.logger.Error("Failed to open bucket", zap.String("bucket", bucket), zap.Error(err))
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		ms.logger.Error("Failed to marshal cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return
	}

	if err := cache.Set(key, data); err != nil {
		ms.logger.Error("Failed to set cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
	}
}

// Delete removes an entry from the named bucket.
func (ms *MemoryStore) Delete(bucket, key string) {
	ms.mu.RLock()
	cache, ok := ms.buckets[bucket]
	ms.mu.RUnlock()
	if !ok {
		return
	}

	_ = cache.Delete(key)
}

// Close stops metrics collection and closes every bucket.
func (ms *MemoryStore) Close() error {
	ms.metricsScheduler.Stop()

	ms.mu.Lock()
	defer ms.mu.Unlock()

	var firstErr error
	for name, cache := range ms.buckets {
		if err := cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(ms.buckets, name)
	}

	return firstErr
}

// openBucket returns the bucket's cache, creating it if needed.
func (ms *MemoryStore) openBucket(name string) (*bigcache.BigCache, error) {
	ms.mu.RLock()
	cache, ok := ms.buckets[name]
	ms.mu.RUnlock()
	if ok {
		return cache, nil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Re-check under the write lock; another writer may have raced us here.
	if cache, ok := ms.buckets[name]; ok {
		return cache, nil
	}

	cfg := bigcache.DefaultConfig(ms.lifeWindow)
	cfg.HardMaxCacheSize = ms.sizeMB
	cfg.MaxEntrySize = 1024 * 1024
	cfg.Verbose = false

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	ms.buckets[name] = cache
	ms.logger.Debug("Opened cache bucket", zap.String("bucket", name))

	return cache, nil
}

// updateMetrics reports aggregate capacity and entry usage.
func (ms *MemoryStore) updateMetrics() {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var capacity, used int64
	for _, cache := range ms.buckets {
		capacity += int64(cache.Capacity())
		used += int64(cache.Len())
	}

	metrics.UpdateCacheCapacity("memory", capacity, used)
}
