package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/internal"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

func snapshotOf(t *testing.T, props internal.Props) state.Values {
	t.Helper()
	values, _, err := internal.SplitProps(props)
	require.NoError(t, err)
	require.NotNil(t, values)
	return values
}

func TestInitialProps_Server(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("runs shared and page events on a fresh scope", func(t *testing.T) {
		t.Parallel()

		shared, sharedCount := counted("test/initial/server/shared")
		page := state.NewEvent[internal.PageContext]("test/initial/server/page")
		state.Restore(page, internal.PageContext{}, state.WithSID("test/initial/server/ctx"))

		rt := internal.NewRuntime()
		bind := rt.MustInitialProps(internal.InitialPropsConfig{SharedEvents: []internal.Event{shared}})
		fn := bind(internal.InitialPage{
			PageEvent: page,
			Customize: func(_ context.Context, scope *state.Scope, c *internal.InitialContext) (internal.Props, error) {
				return internal.Props{"title": "Post", "count": sharedCount.Get(scope)}, nil
			},
		})

		for range 2 {
			props, err := fn(ctx, &internal.InitialContext{
				Pathname: "/blog/[slug]",
				AsPath:   "/blog/hello",
				Query:    url.Values{"slug": {"hello"}},
			})
			require.NoError(t, err)
			require.Equal(t, "Post", props["title"])
			require.Equal(t, 1, props["count"])

			snap := snapshotOf(t, props)
			require.Equal(t, 1, snap["test/initial/server/shared/count"])
			require.Equal(t, true, snap[`test/initial/server/shared-{"runOnce":true}/called`])
			pc := snap["test/initial/server/ctx"].(internal.PageContext)
			require.Equal(t, "hello", pc.Param("slug"))
			require.True(t, pc.IsServer())
		}
		require.Nil(t, rt.Scopes().Current())
	})

	t.Run("snapshot wins over customized props", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRuntime()
		fn := rt.MustInitialProps(internal.InitialPropsConfig{})(internal.InitialPage{
			Customize: func(context.Context, *state.Scope, *internal.InitialContext) (internal.Props, error) {
				return internal.Props{internal.InitialStateKey: "spoofed"}, nil
			},
		})

		props, err := fn(ctx, &internal.InitialContext{})
		require.NoError(t, err)
		require.IsType(t, state.Values{}, props[internal.InitialStateKey])
	})

	t.Run("shared events fire every pass when run once is off", func(t *testing.T) {
		t.Parallel()

		shared, sharedCount := counted("test/initial/server/every")
		rt := internal.NewRuntime()
		fn := rt.MustInitialProps(internal.InitialPropsConfig{
			SharedEvents:  []internal.Event{shared},
			RunSharedOnce: new(bool),
		})(internal.InitialPage{
			Customize: func(_ context.Context, scope *state.Scope, _ *internal.InitialContext) (internal.Props, error) {
				return internal.Props{"count": sharedCount.Get(scope)}, nil
			},
		})

		props, err := fn(ctx, &internal.InitialContext{})
		require.NoError(t, err)
		require.Equal(t, 1, props["count"])
		snap := snapshotOf(t, props)
		require.Equal(t, true, snap[`test/initial/server/every-{"runOnce":false}/called`])
		require.NotContains(t, snap, `test/initial/server/every-{"runOnce":true}/called`)
	})

	t.Run("settlement and customization failures propagate", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := state.NewEvent[state.Void]("test/initial/server/failing")
		fx := state.NewEffect[state.Void, int]("test/initial/server/fx", nil)
		state.Forward(failing, fx)

		rt := internal.NewRuntime()
		bind := rt.MustInitialProps(internal.InitialPropsConfig{})

		_, err := bind(internal.InitialPage{PageEvent: failing})(ctx, &internal.InitialContext{})
		require.ErrorIs(t, err, state.ErrNoHandler)

		_, err = bind(internal.InitialPage{
			Customize: func(context.Context, *state.Scope, *internal.InitialContext) (internal.Props, error) { return nil, boom },
		})(ctx, &internal.InitialContext{})
		require.ErrorIs(t, err, boom)
		require.ErrorContains(t, err, "customize")
	})

	t.Run("invalid shared event fails at bind time", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRuntime()
		_, err := rt.InitialProps(internal.InitialPropsConfig{SharedEvents: []internal.Event{nil}})
		require.ErrorIs(t, err, internal.ErrInvalidEvent)
		require.Panics(t, func() {
			rt.MustInitialProps(internal.InitialPropsConfig{SharedEvents: []internal.Event{nil}})
		})
	})
}

func TestInitialProps_Client(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	shared, sharedCount := counted("test/initial/client/shared")
	page, pageCount := counted("test/initial/client/page")

	rt := internal.NewRuntime(internal.RuntimeEnv(internal.EnvClient))
	fn := rt.MustInitialProps(internal.InitialPropsConfig{SharedEvents: []internal.Event{shared}})(
		internal.InitialPage{PageEvent: page},
	)

	// hydrate the session from the server snapshot
	rt.Scopes().Resolve(state.Values{"test/initial/client/shared/count": 1})
	session := rt.Scopes().Current()

	props, err := fn(ctx, &internal.InitialContext{Pathname: "/next"})
	require.NoError(t, err)

	require.Same(t, session, rt.Scopes().Current())
	require.Equal(t, 1, sharedCount.Get(session))
	require.Equal(t, 1, pageCount.Get(session))

	snap := snapshotOf(t, props)
	require.Equal(t, 1, snap["test/initial/client/page/count"])
}

func TestServerProps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	request := func() *internal.ServerContext {
		r := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		return &internal.ServerContext{
			Request:     r,
			Route:       "/users/[id]",
			ResolvedURL: "/users/7",
			Params:      url.Values{"id": {"7"}},
			Query:       url.Values{"id": {"7"}},
		}
	}

	t.Run("props merge with the snapshot", func(t *testing.T) {
		t.Parallel()

		shared, _ := counted("test/server/shared")
		page := state.NewEvent[internal.PageContext]("test/server/page")
		userID := state.Restore(state.Map(page, func(pc internal.PageContext) string { return pc.Param("id") }), "",
			state.WithSID("test/server/user"))

		rt := internal.NewRuntime()
		fn := rt.ServerProps(internal.SharedConfig{SharedEvents: []internal.Event{shared, nil}})(internal.ServerPage{
			PageEvent: page,
			Customize: func(_ context.Context, scope *state.Scope, _ *internal.ServerContext) (internal.Result, error) {
				return internal.PropsResult(internal.Props{"user": userID.Get(scope)}).WithRevalidate(time.Minute), nil
			},
		})

		for range 2 {
			res, err := fn(ctx, request())
			require.NoError(t, err)
			require.True(t, res.IsProps())
			require.Zero(t, res.Revalidate())
			require.Equal(t, "7", res.Props()["user"])

			snap := snapshotOf(t, res.Props())
			require.Equal(t, "7", snap["test/server/user"])
			require.Equal(t, 1, snap["test/server/shared/count"])
		}
	})

	t.Run("deferred props resolve after settlement", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRuntime()
		fn := rt.ServerProps(internal.SharedConfig{})(internal.ServerPage{
			Customize: func(context.Context, *state.Scope, *internal.ServerContext) (internal.Result, error) {
				return internal.DeferredProps(func(context.Context) (internal.Props, error) {
					return internal.Props{"late": true}, nil
				}), nil
			},
		})

		res, err := fn(ctx, request())
		require.NoError(t, err)
		require.Equal(t, true, res.Props()["late"])
		require.Contains(t, res.Props(), internal.InitialStateKey)
	})

	t.Run("redirect and not found bypass the snapshot", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRuntime()
		bind := rt.ServerProps(internal.SharedConfig{})

		res, err := bind(internal.ServerPage{
			Customize: func(context.Context, *state.Scope, *internal.ServerContext) (internal.Result, error) {
				return internal.RedirectResult(internal.Redirect{Destination: "/login"}), nil
			},
		})(ctx, request())
		require.NoError(t, err)
		rd, ok := res.Redirect()
		require.True(t, ok)
		require.Equal(t, "/login", rd.Destination)
		require.Equal(t, http.StatusTemporaryRedirect, rd.Status())
		require.Nil(t, res.Props())

		res, err = bind(internal.ServerPage{
			Customize: func(context.Context, *state.Scope, *internal.ServerContext) (internal.Result, error) {
				return internal.NotFoundResult(), nil
			},
		})(ctx, request())
		require.NoError(t, err)
		require.True(t, res.IsNotFound())
		require.Nil(t, res.Props())
	})

	t.Run("failed lookup handled in the graph yields not found", func(t *testing.T) {
		t.Parallel()

		page := state.NewEvent[internal.PageContext]("test/server/post-opened")
		fx := state.NewEffect("test/server/get-post", func(context.Context, internal.PageContext) (string, error) {
			return "", errors.New("404 from api")
		})
		state.Forward(page, fx)
		post := state.Restore(fx.DoneData, "", state.WithSID("test/server/post"))
		missing := state.NewStore(false, state.WithSID("test/server/missing"))
		state.On(missing, fx.FailData, func(bool, error) bool { return true })

		rt := internal.NewRuntime()
		res, err := rt.ServerProps(internal.SharedConfig{})(internal.ServerPage{
			PageEvent: page,
			Customize: func(_ context.Context, scope *state.Scope, _ *internal.ServerContext) (internal.Result, error) {
				if missing.Get(scope) {
					return internal.NotFoundResult(), nil
				}
				return internal.PropsResult(internal.Props{"post": post.Get(scope)}), nil
			},
		})(ctx, request())
		require.NoError(t, err)
		require.True(t, res.IsNotFound())
	})

	t.Run("deferred failure propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		rt := internal.NewRuntime()
		_, err := rt.ServerProps(internal.SharedConfig{})(internal.ServerPage{
			Customize: func(context.Context, *state.Scope, *internal.ServerContext) (internal.Result, error) {
				return internal.DeferredProps(func(context.Context) (internal.Props, error) { return nil, boom }), nil
			},
		})(ctx, request())
		require.ErrorIs(t, err, boom)
	})
}

func TestStaticProps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	page := state.NewEvent[internal.StaticPageContext]("test/static/page")
	slug := state.Restore(state.Map(page, func(sc internal.StaticPageContext) string { return sc.Param("slug") }), "",
		state.WithSID("test/static/slug"))

	rt := internal.NewRuntime()
	fn := rt.StaticProps(internal.SharedConfig{})(internal.StaticPage{
		PageEvent: page,
		Customize: func(_ context.Context, scope *state.Scope, c *internal.StaticContext) (internal.Result, error) {
			if slug.Get(scope) == "missing" {
				return internal.NotFoundResult(), nil
			}
			return internal.PropsResult(internal.Props{"preview": c.Preview}).WithRevalidate(time.Minute), nil
		},
	})

	res, err := fn(ctx, &internal.StaticContext{Params: url.Values{"slug": {"hello"}}})
	require.NoError(t, err)
	require.Equal(t, time.Minute, res.Revalidate())
	require.Equal(t, false, res.Props()["preview"])
	require.Equal(t, "hello", snapshotOf(t, res.Props())["test/static/slug"])

	res, err = fn(ctx, &internal.StaticContext{Params: url.Values{"slug": {"missing"}}})
	require.NoError(t, err)
	require.True(t, res.IsNotFound())
}

func TestRedirect_Status(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusTemporaryRedirect, internal.Redirect{}.Status())
	require.Equal(t, http.StatusPermanentRedirect, internal.Redirect{Permanent: true}.Status())
	require.Equal(t, http.StatusFound, internal.Redirect{Permanent: true, StatusCode: http.StatusFound}.Status())
}
