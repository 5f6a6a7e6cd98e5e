package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/pkg/cache"
)

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hit skips the loader", func(t *testing.T) {
		t.Parallel()

		m := newMemory[string](t)
		require.NoError(t, m.Set(ctx, "k", "cached", 0))

		v, err := cache.GetOrSet(ctx, m, "k", func(context.Context) (string, time.Duration, error) {
			t.Fatal("loader called on hit")
			return "", 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", v)
	})

	t.Run("miss stores the loaded value", func(t *testing.T) {
		t.Parallel()

		m := newMemory[string](t)
		v, err := cache.GetOrSet(ctx, m, "k", func(context.Context) (string, time.Duration, error) {
			return "fresh", time.Minute, nil
		})
		require.NoError(t, err)
		require.Equal(t, "fresh", v)

		stored, err := m.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "fresh", stored)
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		m := newMemory[string](t)
		_, err := cache.GetOrSet(ctx, m, "k", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		ok, err := m.Has(ctx, "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		m := newMemory[int](t)
		var calls atomic.Int32
		release := make(chan struct{})

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Go(func() {
				results[i], _ = cache.GetOrSet(ctx, m, "k", func(context.Context) (int, time.Duration, error) {
					calls.Add(1)
					<-release
					return 42, 0, nil
				})
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			require.Equal(t, 42, r)
		}
	})

	t.Run("same key on different caches loads independently", func(t *testing.T) {
		t.Parallel()

		a, b := newMemory[string](t), newMemory[string](t)
		va, err := cache.GetOrSet(ctx, a, "k", func(context.Context) (string, time.Duration, error) { return "a", 0, nil })
		require.NoError(t, err)
		vb, err := cache.GetOrSet(ctx, b, "k", func(context.Context) (string, time.Duration, error) { return "b", 0, nil })
		require.NoError(t, err)

		require.Equal(t, "a", va)
		require.Equal(t, "b", vb)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type page struct {
		Title string `json:"title"`
	}

	codec := cache.JSON[page]()
	data, err := codec.Marshal(page{Title: "hello"})
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"hello"}`, string(data))

	_, err = codec.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)
}
