package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisResultCache implements ResultCache on a Redis server, letting several
// API instances share verdicts. Expiry is delegated to Redis.
type RedisResultCache struct {
	client *redis.Client
	config Config
}

// NewRedisResultCache wraps an existing client
func NewRedisResultCache(client *redis.Client, config Config) *RedisResultCache {
	return &RedisResultCache{client: client, config: config}
}

// NewRedisResultCacheFromAddr connects to addr and checks the server is reachable
func NewRedisResultCacheFromAddr(ctx context.Context, addr string, config Config) (*RedisResultCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisResultCache(client, config), nil
}

func (c *RedisResultCache) key(k string) string {
	return c.config.Prefix + k
}

func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return data, true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.key(key), value, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *RedisResultCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}
