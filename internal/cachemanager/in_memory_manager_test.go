package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *InMemoryCacheManager[string, string] {
	t.Helper()
	return NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	cache.Set(ctx, "k", "v", time.Minute)

	value, found := cache.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, "v", value)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	value, found := cache.Get(ctx, "absent")
	require.False(t, found)
	require.Empty(t, value)
}

func TestInMemoryCacheManager_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	cache.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := cache.Get(ctx, "k")
	require.False(t, found)
}

func TestInMemoryCacheManager_GetWithRefreshExtendsTTL(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	cache.Set(ctx, "k", "v", 40*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	// The refresh restarts the clock; without it the next sleep would expire
	// the entry.
	_, found := cache.GetWithRefresh(ctx, "k", 100*time.Millisecond)
	require.True(t, found)

	time.Sleep(30 * time.Millisecond)
	_, found = cache.Get(ctx, "k")
	require.True(t, found)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	cache.Set(ctx, "a", "1", time.Minute)
	cache.Set(ctx, "b", "2", time.Minute)

	require.NoError(t, cache.Delete(ctx, "a", "b"))

	_, found := cache.Get(ctx, "a")
	require.False(t, found)
	_, found = cache.Get(ctx, "b")
	require.False(t, found)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	cache.Set(ctx, "a", "1", time.Minute)
	require.NoError(t, cache.Flush(ctx))

	_, found := cache.Get(ctx, "a")
	require.False(t, found)
}

func TestInMemoryCacheManager_StructValues(t *testing.T) {
	type record struct {
		ID   string
		Size int
	}
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, record]("records", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "r1", record{ID: "r1", Size: 7}, time.Minute)

	got, found := cache.Get(ctx, "r1")
	require.True(t, found)
	require.Equal(t, record{ID: "r1", Size: 7}, got)
}
