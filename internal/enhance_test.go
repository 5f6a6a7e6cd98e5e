package internal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/internal"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

// counted declares an event and a store counting how often it fired.
func counted(sid string) (*state.Event[state.Void], *state.Store[int]) {
	ev := state.NewEvent[state.Void](sid)
	n := state.On(state.NewStore(0, state.WithSID(sid+"/count")), ev, func(n int, _ state.Void) int { return n + 1 })
	return ev, n
}

func TestEnhancer_Enhance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("run once forwards a single time per scope", func(t *testing.T) {
		t.Parallel()

		ev, count := counted("test/enhance/once")
		wrapped := internal.NewEnhancer().MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})

		scope := state.Fork()
		for range 3 {
			require.NoError(t, wrapped.Dispatch(ctx, scope, nil))
		}
		require.Equal(t, 1, count.Get(scope))

		other := state.Fork()
		require.NoError(t, wrapped.Dispatch(ctx, other, nil))
		require.Equal(t, 1, count.Get(other))
	})

	t.Run("without run once every call forwards", func(t *testing.T) {
		t.Parallel()

		ev, count := counted("test/enhance/always")
		wrapped := internal.NewEnhancer().MustEnhance(ev, internal.EnhanceOptions{})

		scope := state.Fork()
		require.NoError(t, wrapped.Dispatch(ctx, scope, nil))
		require.NoError(t, wrapped.Dispatch(ctx, scope, nil))
		require.Equal(t, 2, count.Get(scope))
	})

	t.Run("direct dispatch of the original closes the gate", func(t *testing.T) {
		t.Parallel()

		ev, count := counted("test/enhance/direct")
		wrapped := internal.NewEnhancer().MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})

		scope := state.Fork()
		require.NoError(t, ev.Dispatch(ctx, scope, nil))
		require.NoError(t, wrapped.Dispatch(ctx, scope, nil))
		require.Equal(t, 1, count.Get(scope))
	})

	t.Run("payload reaches the original unchanged", func(t *testing.T) {
		t.Parallel()

		ev := state.NewEvent[internal.PageContext]("test/enhance/payload")
		last := state.Restore(ev, internal.PageContext{})
		wrapped := internal.NewEnhancer().MustEnhance(ev, internal.EnhanceOptions{})

		scope := state.Fork()
		pc := internal.PageContext{Env: internal.EnvServer, Pathname: "/x"}
		require.NoError(t, wrapped.Dispatch(ctx, scope, pc))
		require.Equal(t, "/x", last.Get(scope).Pathname)
	})

	t.Run("equal options return the same wrapped event", func(t *testing.T) {
		t.Parallel()

		ev := state.NewEvent[state.Void]("test/enhance/memo")
		e := internal.NewEnhancer()

		a := e.MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})
		b := e.MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})
		c := e.MustEnhance(ev, internal.EnhanceOptions{})
		d := e.MustEnhance(ev, internal.EnhanceOptions{RunOnce: false})

		require.Same(t, a, b)
		require.Same(t, c, d)
		require.NotSame(t, a, c)
		require.Equal(t, 2, e.Len())

		e.Reset()
		require.Zero(t, e.Len())
		require.NotSame(t, a, e.MustEnhance(ev, internal.EnhanceOptions{RunOnce: true}))
	})

	t.Run("rejects values that are not events", func(t *testing.T) {
		t.Parallel()

		e := internal.NewEnhancer()
		var typedNil *state.Event[int]

		_, err := e.Enhance(nil, internal.EnhanceOptions{})
		require.ErrorIs(t, err, internal.ErrInvalidEvent)
		_, err = e.Enhance(typedNil, internal.EnhanceOptions{})
		require.ErrorIs(t, err, internal.ErrInvalidEvent)
		require.Panics(t, func() { e.MustEnhance(nil, internal.EnhanceOptions{}) })
	})
}

func TestEnhancer_Records(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("records travel with the snapshot", func(t *testing.T) {
		t.Parallel()

		ev, count := counted("test/enhance/persist")
		wrapped := internal.NewEnhancer().MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})

		first := state.Fork()
		require.NoError(t, wrapped.Dispatch(ctx, first, nil))

		next := state.Fork(state.WithValues(state.Serialize(first)))
		require.NoError(t, wrapped.Dispatch(ctx, next, nil))
		require.Equal(t, 1, count.Get(next))
	})

	t.Run("ephemeral records reset with the scope", func(t *testing.T) {
		t.Parallel()

		ev, count := counted("test/enhance/ephemeral")
		wrapped := internal.NewEnhancer(internal.WithEphemeralRecords()).
			MustEnhance(ev, internal.EnhanceOptions{RunOnce: true})

		first := state.Fork()
		require.NoError(t, wrapped.Dispatch(ctx, first, nil))

		snap := state.Serialize(first)
		require.NotContains(t, snap, `test/enhance/ephemeral-{"runOnce":true}/called`)

		next := state.Fork(state.WithValues(snap))
		require.NoError(t, wrapped.Dispatch(ctx, next, nil))
		require.Equal(t, 2, count.Get(next))
	})
}

func TestIsEvent(t *testing.T) {
	t.Parallel()

	var typedNil *state.Event[int]
	ev := state.NewEvent[int]("")

	require.True(t, internal.IsEvent(ev))
	require.False(t, internal.IsEvent(nil))
	require.False(t, internal.IsEvent(typedNil))
	require.False(t, internal.IsEvent("event"))
	require.False(t, internal.IsEvent(state.NewStore(0)))

	require.Equal(t, []internal.Event{ev, ev}, internal.Qualify(nil, ev, typedNil, ev))
	require.Empty(t, internal.Qualify())
}
