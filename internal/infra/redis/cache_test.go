package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	// Create an in-memory Redis instance for testing
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewCache(client, zap.NewNop(), "ads"), mr
}

func TestCache_SetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "ad:123", []byte(`{"id":"123"}`), time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, "ad:123")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"123"}`), data)
}

func TestCache_Get_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	// A miss is nil data and nil error, not an error condition
	data, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ad:123", []byte("x"), time.Minute))

	// Stored under the configured prefix
	assert.True(t, mr.Exists("ads:ad:123"))
	assert.False(t, mr.Exists("ad:123"))
}

func TestCache_TTLApplied(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ad:123", []byte("x"), 3*time.Minute))

	ttl := mr.TTL("ads:ad:123")
	assert.Equal(t, 3*time.Minute, ttl)

	// Expiry actually evicts
	mr.FastForward(4 * time.Minute)
	data, err := cache.Get(ctx, "ad:123")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ad:123", []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "ad:123"))

	data, err := cache.Get(ctx, "ad:123")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Idempotent on missing keys
	assert.NoError(t, cache.Delete(ctx, "ad:123"))
}

func TestCache_DeleteByPrefix(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:category=PROPERTY", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "search:location=mumbai", []byte("b"), time.Minute))
	require.NoError(t, cache.Set(ctx, "ad:123", []byte("c"), time.Minute))

	require.NoError(t, cache.DeleteByPrefix(ctx, "search:"))

	data, err := cache.Get(ctx, "search:category=PROPERTY")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = cache.Get(ctx, "search:location=mumbai")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Other namespaces are untouched
	data, err = cache.Get(ctx, "ad:123")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), data)
}

func TestCache_DeleteByPrefix_NoMatches(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.DeleteByPrefix(ctx, "search:"))
}
