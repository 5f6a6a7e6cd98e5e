package internal

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

// InitialPropsConfig declares the events every initial-props page shares.
type InitialPropsConfig struct {
	SharedEvents []Event
	// RunSharedOnce wraps shared events so they fire once per scope.
	// Nil means true; pass a pointer to false to fire them on every pass.
	RunSharedOnce *bool
}

func (c InitialPropsConfig) runSharedOnce() bool {
	return c.RunSharedOnce == nil || *c.RunSharedOnce
}

// InitialPage declares one page bound through InitialProps.
type InitialPage struct {
	// PageEvent receives the normalized PageContext. Optional.
	PageEvent Event
	// Customize returns extra props once the events settled. Optional.
	Customize func(ctx context.Context, scope *state.Scope, c *InitialContext) (Props, error)
}

// InitialPropsFunc computes the props of one initial-props pass.
type InitialPropsFunc func(ctx context.Context, c *InitialContext) (Props, error)

// InitialProps returns a binder for pages that compute props both on the
// server and on the client.
//
// On the server the wrapped shared events and the page event run against a
// fresh scope. On the client only the page event runs, against the current
// session scope, which then becomes the current one again.
// Shared events are validated and wrapped once, when InitialProps is called.
func (rt *Runtime) InitialProps(cfg InitialPropsConfig) (func(InitialPage) InitialPropsFunc, error) {
	shared := make([]Event, 0, len(cfg.SharedEvents))
	for _, ev := range cfg.SharedEvents {
		wrapped, err := rt.enhancer.Enhance(ev, EnhanceOptions{RunOnce: cfg.runSharedOnce()})
		if err != nil {
			return nil, fmt.Errorf("shared events: %w", err)
		}
		shared = append(shared, wrapped)
	}

	return func(page InitialPage) InitialPropsFunc {
		return func(ctx context.Context, c *InitialContext) (Props, error) {
			var events []Event
			if rt.env.IsClient() {
				events = Qualify(page.PageEvent)
			} else {
				events = Qualify(append(shared[:len(shared):len(shared)], page.PageEvent)...)
			}

			pc := NormalizeInitial(rt.env, c)
			model, err := startModel(ctx, rt.logger, events, pc, rt.scopes.Current())
			if err != nil {
				return nil, err
			}
			rt.scopes.Replace(model.Scope)

			var user Props
			if page.Customize != nil {
				if user, err = page.Customize(ctx, model.Scope, c); err != nil {
					return nil, fmt.Errorf("customize: %w", err)
				}
			}
			return mergeProps(user, model.Props), nil
		}
	}, nil
}

// MustInitialProps is like InitialProps but panics on invalid shared events.
func (rt *Runtime) MustInitialProps(cfg InitialPropsConfig) func(InitialPage) InitialPropsFunc {
	bind, err := rt.InitialProps(cfg)
	if err != nil {
		panic(err)
	}
	return bind
}
