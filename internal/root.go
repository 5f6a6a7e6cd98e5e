package internal

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

type scopeKey struct{}

// WithScope returns a context carrying scope.
func WithScope(ctx context.Context, scope *state.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope the current render runs in.
func ScopeFromContext(ctx context.Context) (*state.Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*state.Scope)
	return scope, ok && scope != nil
}

// SplitProps separates the snapshot from the user props.
// The props map is not modified.
func SplitProps(props Props) (state.Values, Props, error) {
	page := make(Props, len(props))
	maps.Copy(page, props)
	delete(page, InitialStateKey)

	raw, ok := props[InitialStateKey]
	if !ok || raw == nil {
		return nil, page, nil
	}
	values, ok := raw.(state.Values)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrInvalidState, raw)
	}
	return values, page, nil
}

// Root wraps a page with the scope built from the snapshot in props.
// On the client the same props map yields the same scope on every render;
// new props fold the current scope into a replacement.
func (rt *Runtime) Root(props Props, render PageRender) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		values, page, err := SplitProps(props)
		if err != nil {
			return err
		}
		scope := rt.scopes.Resolve(values)
		return render(page).Render(WithScope(ctx, scope), w)
	})
}

// UsePageEvent dispatches the wrapped event into the scope of the current
// render with the page context of nav. With RunOnce the event fires at most
// once per scope, however many times the page renders.
// Falls back to the client session scope when ctx carries none.
func (rt *Runtime) UsePageEvent(ctx context.Context, nav *Navigation, event Event, opts EnhanceOptions) error {
	wrapped, err := rt.enhancer.Enhance(event, opts)
	if err != nil {
		return err
	}

	scope, ok := ScopeFromContext(ctx)
	if !ok {
		if scope = rt.scopes.Current(); scope == nil {
			return ErrNoScope
		}
	}

	return wrapped.Dispatch(ctx, scope, NormalizeNavigation(rt.env, nav))
}
