package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*cart.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cart.NewRedisStore(client, ttl), mr
}

func stores(t *testing.T) map[string]cart.Store {
	rs, _ := newRedisStore(t, time.Hour)
	return map[string]cart.Store{
		"memory": cart.NewMemStore(time.Hour),
		"redis":  rs,
	}
}

func TestStores_PerSessionLifecycle(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, s.Ping(ctx))

			empty, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Zero(t, empty.LineCount())

			_, err = s.Update(ctx, "s1", func(c *cart.Cart) { c.Add(mug) })
			require.NoError(t, err)
			got, err := s.Update(ctx, "s1", func(c *cart.Cart) { c.Add(mug); c.Add(pen) })
			require.NoError(t, err)
			assert.Equal(t, "11.50", got.TotalPrice().StringFixed(2))

			other, err := s.Get(ctx, "s2")
			require.NoError(t, err)
			assert.Zero(t, other.LineCount(), "carts are scoped to one session")

			stored, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			lines := stored.Lines()
			require.Len(t, lines, 2)
			assert.Equal(t, 2, lines[0].Quantity)
			assert.True(t, mug.Price.Equal(lines[0].Product.Price))

			require.NoError(t, s.Discard(ctx, "s1"))
			gone, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Zero(t, gone.LineCount())
		})
	}
}

func TestStores_ConcurrentUpdatesAreNotLost(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			const workers = 4
			var wg sync.WaitGroup
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Update(context.Background(), "s1", func(c *cart.Cart) { c.Add(pen) })
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, err := s.Get(t.Context(), "s1")
			require.NoError(t, err)
			require.Equal(t, 1, got.LineCount())
			assert.Equal(t, workers, got.Lines()[0].Quantity)
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t, 15*time.Minute)

	_, err := s.Update(t.Context(), "s1", func(c *cart.Cart) { c.Add(mug) })
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, mr.TTL("cart:s1"))

	mr.FastForward(16 * time.Minute)
	got, err := s.Get(t.Context(), "s1")
	require.NoError(t, err)
	assert.Zero(t, got.LineCount())
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("cart:s1", "{not json"))

	_, err := s.Get(t.Context(), "s1")
	require.ErrorContains(t, err, "unmarshal cart failed")
}

func TestMemStore_Expiry(t *testing.T) {
	s := cart.NewMemStore(time.Millisecond)

	_, err := s.Update(t.Context(), "s1", func(c *cart.Cart) { c.Add(mug) })
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	got, err := s.Get(t.Context(), "s1")
	require.NoError(t, err)
	assert.Zero(t, got.LineCount())
}
