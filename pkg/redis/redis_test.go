package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable Redis; set TEST_REDIS_ADDR (e.g. localhost:6379).
func newTestClient(t *testing.T) *redis.Client {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})
	return rdb
}

func TestCheckoutLock_ExclusivePerCustomer(t *testing.T) {
	rdb := newTestClient(t)
	lock := NewCheckoutLock(rdb)
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, 7, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = lock.Acquire(ctx, 7, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	other, ok, err := lock.Acquire(ctx, 8, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	other()

	release()
	again, ok, err := lock.Acquire(ctx, 7, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	again()
}

func TestCheckoutLock_ReleaseKeepsForeignLock(t *testing.T) {
	rdb := newTestClient(t)
	lock := NewCheckoutLock(rdb)
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, 9, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, rdb.Set(ctx, checkoutKeyPrefix+"9", "someone-else", time.Minute).Err())
	release()

	val, err := rdb.Get(ctx, checkoutKeyPrefix+"9").Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}
