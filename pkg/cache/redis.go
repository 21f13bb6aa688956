package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/platinummonkey/contentlint/pkg/linter"
)

const redisKeyPrefix = "contentlint:result:"

// RedisCache is a Redis-backed lint result cache shared across instances.
// It sits behind the in-process ResultCache as a second level.
type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		redis: client,
		ttl:   ttl,
	}, nil
}

// NewRedisCacheWithClient wraps an existing client, used by tests and by
// hosts that share one connection pool.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redis: client,
		ttl:   ttl,
	}
}

// Get retrieves a cached lint result
func (c *RedisCache) Get(ctx context.Context, key string) (*linter.LintResult, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	data, err := c.redis.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var result linter.LintResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss; the caller overwrites it.
		return nil, ErrCacheMiss
	}

	return &result, nil
}

// Set stores a lint result with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, result *linter.LintResult) error {
	if key == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal lint result: %w", err)
	}

	if err := c.redis.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete removes a cached result
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return c.redis.Del(ctx, redisKeyPrefix+key).Err()
}

// Ping verifies Redis connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.redis.Close()
}
