package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheConfig binds a key prefix to the TTL of the rows stored under it
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Department rows change rarely
	DepartmentCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "department:",
	}

	// Course rows, keyed by course code
	CourseCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "course:",
	}

	// Membership catalog
	MembershipCacheConfig = CacheConfig{
		TTL:    30 * time.Minute,
		Prefix: "membership:",
	}

	// Parent existence checks on the create paths. Only hits are stored.
	ExistsCacheConfig = CacheConfig{
		TTL:    2 * time.Minute,
		Prefix: "exists:",
	}
)

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// CacheHelper stores JSON values under one prefix with one TTL. A helper
// without a client misses on every read and drops every write.
type CacheHelper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCacheHelper creates a helper for one cache config
func NewCacheHelper(client *redis.Client, config CacheConfig) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: config.Prefix,
		ttl:    config.TTL,
	}
}

func (c *CacheHelper) key(k string) string {
	return c.prefix + k
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set marshals and stores data with the helper's TTL
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// Delete removes keys in one round trip
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// InvalidatePattern removes all keys matching a pattern using SCAN instead of KEYS
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	fullPattern := c.key(pattern)
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan pattern error: %w", err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	const batchSize = 100
	for i := 0; i < len(keys); i += batchSize {
		end := min(i+batchSize, len(keys))
		pipe.Del(ctx, keys[i:end]...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache pipeline delete error: %w", err)
	}
	return nil
}

// CacheOrExecute implements cache-aside: a hit fills dest, a miss runs
// fetch, stores its result and copies it into dest
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache read failed, falling back to database", "error", err, "key", c.key(key))
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch function error: %w", err)
	}

	if err := c.Set(ctx, key, value); err != nil {
		slog.ErrorContext(ctx, "Cache write failed", "error", err, "key", c.key(key))
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// RememberExists answers an existence check from the cache when a previous
// check found the row. Misses are never stored, so a row created later is
// seen immediately.
func (c *CacheHelper) RememberExists(ctx context.Context, key string, check func() (bool, error)) (bool, error) {
	if c.client != nil {
		n, err := c.client.Exists(ctx, c.key(key)).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			slog.WarnContext(ctx, "Cache exists check failed", "error", err, "key", c.key(key))
		}
	}

	found, err := check()
	if err != nil || !found {
		return found, err
	}

	if c.client != nil {
		if err := c.client.Set(ctx, c.key(key), "1", c.ttl).Err(); err != nil {
			slog.ErrorContext(ctx, "Cache write failed", "error", err, "key", c.key(key))
		}
	}
	return true, nil
}

// CacheManager groups the helpers used by the repositories
type CacheManager struct {
	Department *CacheHelper
	Course     *CacheHelper
	Membership *CacheHelper
	Exists     *CacheHelper

	client *redis.Client
}

// NewCacheManager creates cache manager with all cache helpers. A nil client
// yields helpers that always miss.
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Department: NewCacheHelper(client, DepartmentCacheConfig),
		Course:     NewCacheHelper(client, CourseCacheConfig),
		Membership: NewCacheHelper(client, MembershipCacheConfig),
		Exists:     NewCacheHelper(client, ExistsCacheConfig),
		client:     client,
	}
}

// Enabled reports whether a redis client is attached
func (cm *CacheManager) Enabled() bool {
	return cm.client != nil
}

// HealthCheck verifies cache connectivity
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return ErrCacheNotAvailable
	}
	if err := cm.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}
