package interfaces

import (
	"storefront-edge/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// BucketStore is the host-provided key-value blob cache, partitioned into
// named buckets. Exactly one bucket (the current generation) receives writes;
// superseded buckets are enumerated and purged on activation.
type BucketStore interface {
	// Buckets lists the names of all existing buckets.
	Buckets() ([]string, error)

	// DeleteBucket removes a bucket and every entry it owns.
	DeleteBucket(name string) error

	Get(bucket, key string) (*models.CacheEntry, bool)
	Set(bucket, key string, entry *models.CacheEntry)
	Delete(bucket, key string)

	// Close releases store resources.
	Close() error
}
