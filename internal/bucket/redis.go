package bucket

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/models"
)

const (
	bucketsKey      = "edge:buckets"
	entryKeyFormat  = "edge:bucket:%s:entry:%s"
	indexKeyFormat  = "edge:bucket:%s:keys"
	purgeChunkSize  = 100
	defaultOpTimout = 3 * time.Second
)

// Ensure RedisStore implements interfaces.BucketStore
var _ interfaces.BucketStore = (*RedisStore)(nil)

// RedisStore implements BucketStore on Redis. Blobs live under per-bucket
// prefixed keys; a per-bucket SET indexes the keys so a superseded bucket can
// be enumerated and purged, and a global SET tracks bucket names. Entries
// carry no TTL: they die with their bucket.
type RedisStore struct {
	client      *redis.Client
	logger      *zap.Logger
	readTimeout time.Duration
	sendTimeout time.Duration
}

// RedisOptions configures the store's connection.
type RedisOptions struct {
	Addr           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	SendTimeout    time.Duration
	PoolSize       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = defaultOpTimout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = defaultOpTimout
	}
	if opts.SendTimeout == 0 {
		opts.SendTimeout = defaultOpTimout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.ConnectTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.SendTimeout,
		PoolSize:     opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to redis", zap.String("address", opts.Addr))

	return &RedisStore{
		client:      client,
		logger:      logger,
		readTimeout: opts.ReadTimeout,
		sendTimeout: opts.SendTimeout,
	}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used in tests.
func NewRedisStoreWithClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:      client,
		logger:      logger,
		readTimeout: defaultOpTimout,
		sendTimeout: defaultOpTimout,
	}
}

// Buckets lists all known bucket names in stable order.
func (rs *RedisStore) Buckets() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.readTimeout)
	defer cancel()

	names, err := rs.client.SMembers(ctx, bucketsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// DeleteBucket removes the bucket's entries, its key index, and its name.
func (rs *RedisStore) DeleteBucket(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), rs.sendTimeout)
	defer cancel()

	indexKey := fmt.Sprintf(indexKeyFormat, name)

	keys, err := rs.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read bucket index for %s: %w", name, err)
	}

	for start := 0; start < len(keys); start += purgeChunkSize {
		end := start + purgeChunkSize
		if end > len(keys) {
			end = len(keys)
		}

		chunk := make([]string, 0, end-start)
		for _, key := range keys[start:end] {
			chunk = append(chunk, fmt.Sprintf(entryKeyFormat, name, key))
		}

		if err := rs.client.Del(ctx, chunk...).Err(); err != nil {
			return fmt.Errorf("failed to purge bucket %s: %w", name, err)
		}
	}

	if err := rs.client.Del(ctx, indexKey).Err(); err != nil {
		return fmt.Errorf("failed to delete bucket index for %s: %w", name, err)
	}

	if err := rs.client.SRem(ctx, bucketsKey, name).Err(); err != nil {
		return fmt.Errorf("failed to unregister bucket %s: %w", name, err)
	}

	return nil
}

// Get retrieves an entry from the named bucket.
func (rs *RedisStore) Get(bucket, key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.readTimeout)
	defer cancel()

	data, err := rs.client.Get(ctx, fmt.Sprintf(entryKeyFormat, bucket, key)).Result()
	if err != nil {
		if err != redis.Nil {
			rs.logger.Error("Redis get error",
				zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		rs.logger.Error("Failed to unmarshal cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		rs.Delete(bucket, key)
		return nil, false
	}

	return &entry, true
}

// Set stores an entry in the named bucket and registers it in the indexes.
func (rs *RedisStore) Set(bucket, key string, entry *models.CacheEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.sendTimeout)
	defer cancel()

	data, err := json.Marshal(entry)
	if err != nil {
		rs.logger.Error("Failed to marshal cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return
	}

	if err := rs.client.Set(ctx, fmt.Sprintf(entryKeyFormat, bucket, key), data, 0).Err(); err != nil {
		rs.logger.Error("Failed to set cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return
	}

	if err := rs.client.SAdd(ctx, fmt.Sprintf(indexKeyFormat, bucket), key).Err(); err != nil {
		rs.logger.Error("Failed to index cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
	}

	if err := rs.client.SAdd(ctx, bucketsKey, bucket).Err(); err != nil {
		rs.logger.Error("Failed to register bucket", zap.String("bucket", bucket), zap.Error(err))
	}
}

// Delete removes one entry and its index membership.
func (rs *RedisStore) Delete(bucket, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.sendTimeout)
	defer cancel()

	if err := rs.client.Del(ctx, fmt.Sprintf(entryKeyFormat, bucket, key)).Err(); err != nil {
		rs.logger.Error("Failed to delete cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return
	}

	if err := rs.client.SRem(ctx, fmt.Sprintf(indexKeyFormat, bucket), key).Err(); err != nil {
		rs.logger.Error("Failed to unindex cache entry",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
	}
}

// Close closes the redis connection.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
