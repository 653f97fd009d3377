package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb), mr
}

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	var got int64
	hit, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "k", int64(42), time.Minute))
	hit, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(42), got)

	mr.FastForward(2 * time.Minute)
	hit, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "k", int64(1), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestCache_NilIsEmpty(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	var v string
	hit, err := cache.Get(ctx, "x", &v)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.Set(ctx, "x", "y", time.Second))
	assert.NoError(t, cache.Delete(ctx, "x"))
	assert.Nil(t, NewCache(nil))
}

func TestCache_FillStoresWhenGuardUntouched(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Fill(ctx, "g", "k", time.Minute, func() (interface{}, error) {
		return int64(3), nil
	}))
	var got int64
	hit, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.EqualValues(t, 3, got)

	require.NoError(t, cache.Bump(ctx, "g", time.Minute, "k"))
	assert.False(t, mr.Exists("k"))
	v, err := mr.Get("g")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestCache_FillSkipsWriteAfterBump(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Fill(ctx, "g", "k", time.Minute, func() (interface{}, error) {
		require.NoError(t, cache.Bump(ctx, "g", time.Minute, "k"))
		return int64(0), nil
	}))
	assert.False(t, mr.Exists("k"))
}

func TestCache_FillPassesLoadError(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	boom := assert.AnError

	err := cache.Fill(ctx, "g", "k", time.Minute, func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))

	var nilCache *Cache
	assert.ErrorIs(t, nilCache.Fill(ctx, "g", "k", time.Minute, func() (interface{}, error) { return nil, boom }), boom)
	assert.NoError(t, nilCache.Bump(ctx, "g", time.Minute, "k"))
}
