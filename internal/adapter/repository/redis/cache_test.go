package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "foo", "bar", time.Minute))

	val, err := cache.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, "bar", val)
}

func TestCacheSetNX(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	set, err := cache.SetNX(ctx, "key", "first", time.Minute)
	require.NoError(t, err)
	require.True(t, set, "first SetNX should claim the key")

	set, err = cache.SetNX(ctx, "key", "second", time.Minute)
	require.NoError(t, err)
	require.False(t, set, "second SetNX must not overwrite")
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "foo", "bar", time.Minute))
	require.NoError(t, cache.Delete(ctx, "foo"))

	_, err := cache.Get(ctx, "foo")
	require.Error(t, err, "deleted key should not resolve")
}
