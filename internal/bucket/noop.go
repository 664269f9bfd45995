package bucket

import (
	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/models"
)

// Ensure NoOpStore implements interfaces.BucketStore
var _ interfaces.BucketStore = (*NoOpStore)(nil)

// NoOpStore is a bucket store that holds nothing. Used when caching is
// disabled; every lookup misses and every write is dropped.
type NoOpStore struct{}

// NewNoOpStore creates a new no-operation bucket store.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// Buckets reports no buckets.
func (n *NoOpStore) Buckets() ([]string, error) {
	return nil, nil
}

// DeleteBucket does nothing.
func (n *NoOpStore) DeleteBucket(name string) error {
	return nil
}

// Get always misses.
func (n *NoOpStore) Get(bucket, key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing.
func (n *NoOpStore) Set(bucket, key string, entry *models.CacheEntry) {
	// No-op
}

// Delete does nothing.
func (n *NoOpStore) Delete(bucket, key string) {
	// No-op
}

// Close does nothing.
func (n *NoOpStore) Close() error {
	return nil
}
