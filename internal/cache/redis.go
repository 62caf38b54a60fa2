package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatchSize limits keys fetched per SCAN iteration.
const scanBatchSize = 200

// RedisClient implements Client backed by a Redis server.
type RedisClient struct {
	rdb *redis.Client // Underlying Redis connection.
}

// NewRedisClient constructs a Redis-backed cache client.
func NewRedisClient(rdb *redis.Client) *RedisClient {
	return &RedisClient{rdb: rdb}
}

// Get returns the cached value for key, reporting misses without error.
func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value with the given TTL.
func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes a single key.
func (c *RedisClient) Invalidate(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: del %s: %w", key, err)
	}
	return nil
}

// InvalidateByPattern removes all keys matching a glob pattern using
// SCAN so large keyspaces are not blocked by a KEYS call.
func (c *RedisClient) InvalidateByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("cache: scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if errDel := c.rdb.Del(ctx, keys...).Err(); errDel != nil {
				return fmt.Errorf("cache: del pattern %s: %w", pattern, errDel)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
