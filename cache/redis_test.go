package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// Тест требует живой Redis: REDIS_ADDR=localhost:6379 go test ./cache
func newTestRedisStore(t *testing.T) *RedisStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis is not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client, "yatube:test:"+t.Name()+":")
	require.NoError(t, s.Clear(context.Background()))
	return s
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	_, err := s.Get(ctx, "index:1")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, s.Set(ctx, "index:1", []byte("one"), time.Minute))
	require.NoError(t, s.Set(ctx, "index:2", []byte("two"), 0))

	got, err := s.Get(ctx, "index:1")
	require.NoError(t, err)
	require.Equal(t, "one", string(got))

	require.NoError(t, s.Delete(ctx, "index:1"))
	_, err = s.Get(ctx, "index:1")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx, "index:2")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStoreBackedPageCache(t *testing.T) {
	ctx := context.Background()
	c := NewPageCache(newTestRedisStore(t), time.Minute)
	src := &source{posts: []string{"p2", "p1"}}

	first, err := c.GetOrCompute(ctx, "index:1", src.compute)
	require.NoError(t, err)
	src.deleteFirst()

	stale, err := c.GetOrCompute(ctx, "index:1", src.compute)
	require.NoError(t, err)
	require.Equal(t, first, stale)

	require.NoError(t, c.InvalidateAll(ctx))
	fresh, err := c.GetOrCompute(ctx, "index:1", src.compute)
	require.NoError(t, err)
	require.Equal(t, "[p1]", string(fresh))
}
