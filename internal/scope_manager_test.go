package internal_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/internal"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

func TestScopeManager_Server(t *testing.T) {
	t.Parallel()

	m := internal.NewScopeManager(internal.EnvServer)
	values := state.Values{"test/scopes/server": 1}

	a := m.Resolve(values)
	b := m.Resolve(values)
	require.NotSame(t, a, b)
	require.Nil(t, m.Current())

	m.Replace(state.Fork())
	require.Nil(t, m.Current())
}

func TestScopeManager_Client(t *testing.T) {
	t.Parallel()

	t.Run("first resolve creates the session scope", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		require.Nil(t, m.Current())

		scope := m.Resolve(state.Values{"test/scopes/first": 1})
		require.Same(t, scope, m.Current())
	})

	t.Run("same values map keeps the scope", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		values := state.Values{"test/scopes/same": 1}

		require.Same(t, m.Resolve(values), m.Resolve(values))
	})

	t.Run("equal content in a new map replaces the scope", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		a := m.Resolve(state.Values{"test/scopes/equal": 1})
		b := m.Resolve(state.Values{"test/scopes/equal": 1})

		require.NotSame(t, a, b)
		require.Same(t, b, m.Current())
	})

	t.Run("concurrent resolves agree on one scope", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		m.Resolve(state.Values{"a": 1, "b": 2})
		next := state.Values{"b": 3, "c": 4}

		const workers = 32
		scopes := make([]*state.Scope, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Go(func() {
				scopes[i] = m.Resolve(next)
			})
		}
		wg.Wait()

		for _, scope := range scopes {
			require.Same(t, scopes[0], scope)
		}
		require.Same(t, scopes[0], m.Current())
		require.Equal(t, state.Values{"a": 1, "b": 3, "c": 4}, state.Serialize(scopes[0]))
	})

	t.Run("new values overlay the current snapshot", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		m.Resolve(state.Values{"a": 1, "b": 2})
		next := m.Resolve(state.Values{"b": 3, "c": 4})

		require.Equal(t, state.Values{"a": 1, "b": 3, "c": 4}, state.Serialize(next))
	})

	t.Run("client state survives navigation", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		login := state.NewEvent[string]("test/scopes/login")
		user := state.Restore(login, "", state.WithSID("test/scopes/user"))
		open := state.NewEvent[string]("test/scopes/open")
		page := state.Restore(open, "", state.WithSID("test/scopes/page"))

		m := internal.NewScopeManager(internal.EnvClient)
		home := m.Resolve(state.Values{"test/scopes/page": "home"})
		require.NoError(t, login.Dispatch(ctx, home, "ann"))

		// props of the next page arrive as JSON from the server
		var values state.Values
		require.NoError(t, json.Unmarshal([]byte(`{"test/scopes/page":"profile"}`), &values))

		profile := m.Resolve(values)
		require.Equal(t, "ann", user.Get(profile))
		require.Equal(t, "profile", page.Get(profile))
		require.NoError(t, open.Dispatch(ctx, profile, "settings"))
		require.Equal(t, "home", page.Get(home))
	})

	t.Run("replace swaps the session scope", func(t *testing.T) {
		t.Parallel()

		m := internal.NewScopeManager(internal.EnvClient)
		m.Resolve(nil)
		next := state.Fork()
		m.Replace(next)
		require.Same(t, next, m.Current())

		m.Replace(nil)
		require.Same(t, next, m.Current())
	})
}
