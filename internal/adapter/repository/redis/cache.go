package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a namespaced string cache backed by Redis. The transaction
// usecase layers it over the append-only log, where entries never
// change after being written.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a Cache under the "cache:" namespace.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "cache:",
	}
}

// Get returns the value stored at key, or an error on a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.prefix+key).Result()
}

// Set stores value at key with the given TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// SetNX stores value only when the key is absent.
func (c *Cache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, c.prefix+key, value, ttl).Result()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
