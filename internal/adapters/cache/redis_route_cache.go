package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"resilient-route-service/internal/ports"
)

const keyPrefix = "routecache:"

// RedisRouteCache stores analysis entries in Redis. Entries are written
// without TTL; a full analysis for the same key overwrites the old entry.
type RedisRouteCache struct {
	client *redis.Client
}

// NewRedisRouteCache connects to Redis at addr and verifies the connection.
func NewRedisRouteCache(ctx context.Context, addr string) (*RedisRouteCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisRouteCache{client: client}, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, entry ports.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache put %q: marshal: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}
	return nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (ports.CacheEntry, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.CacheEntry{}, false, nil
	}
	if err != nil {
		return ports.CacheEntry{}, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	var entry ports.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ports.CacheEntry{}, false, fmt.Errorf("cache get %q: unmarshal: %w", key, err)
	}
	return entry, true, nil
}

func (c *RedisRouteCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache clear: scan: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) Close() error {
	return c.client.Close()
}
