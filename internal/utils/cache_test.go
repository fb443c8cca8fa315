package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHelpers_NilClientIsDisabled(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, nil, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	found, err := GetCache(ctx, nil, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, DeleteCache(ctx, nil, "k"))
}

func TestAllowRequest_NilClientAllows(t *testing.T) {
	ok, err := AllowRequest(context.Background(), nil, "rl:1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheHelpers_RoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "k", map[string]int{"a": 1}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	var dest map[string]int
	found, err := GetCache(ctx, rdb, "k", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"a": 1}, dest)

	require.NoError(t, DeleteCache(ctx, rdb, "k"))
	found, err = GetCache(ctx, rdb, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetCache_CorruptEntry(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("k", "{oops"))

	var dest map[string]int
	found, err := GetCache(context.Background(), rdb, "k", &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestAllowRequest_FixedWindow(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	var got []bool
	for i := 0; i < 3; i++ {
		ok, err := AllowRequest(ctx, rdb, "rl:1", 2, time.Minute)
		require.NoError(t, err)
		got = append(got, ok)
	}
	assert.Equal(t, []bool{true, true, false}, got)
	assert.Equal(t, time.Minute, mr.TTL("rl:1"))

	// Later hits do not push the expiry out
	mr.FastForward(30 * time.Second)
	_, err := AllowRequest(ctx, rdb, "rl:1", 2, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("rl:1"))

	mr.FastForward(30 * time.Second)
	ok, err := AllowRequest(ctx, rdb, "rl:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowRequest_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	ok, err := AllowRequest(context.Background(), rdb, "rl:1", 1, time.Minute)
	assert.Error(t, err)
	assert.True(t, ok)
}
