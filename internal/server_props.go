package internal

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

// SharedConfig declares the events every server-props or static-props page
// shares. Absent entries are ignored.
type SharedConfig struct {
	SharedEvents []Event
}

// ServerPage declares one page bound through ServerProps.
type ServerPage struct {
	// PageEvent receives the normalized PageContext. Optional.
	PageEvent Event
	// Customize decides the outcome once the events settled. Optional;
	// without it the page renders with the snapshot only.
	Customize func(ctx context.Context, scope *state.Scope, c *ServerContext) (Result, error)
}

// ServerPropsFunc computes the outcome of one server request.
type ServerPropsFunc func(ctx context.Context, c *ServerContext) (Result, error)

// ServerProps returns a binder for pages computed on every request.
// Shared events and the page event always run, against a fresh scope.
// Redirect and not-found results are returned as they are; props results
// get the snapshot merged in.
func (rt *Runtime) ServerProps(cfg SharedConfig) func(ServerPage) ServerPropsFunc {
	shared := Qualify(cfg.SharedEvents...)

	return func(page ServerPage) ServerPropsFunc {
		events := Qualify(append(shared[:len(shared):len(shared)], page.PageEvent)...)

		return func(ctx context.Context, c *ServerContext) (Result, error) {
			model, err := startModel(ctx, rt.logger, events, NormalizeServer(c), nil)
			if err != nil {
				return Result{}, err
			}

			res := PropsResult(nil)
			if page.Customize != nil {
				if res, err = page.Customize(ctx, model.Scope, c); err != nil {
					return Result{}, fmt.Errorf("customize: %w", err)
				}
			}

			res, err = res.resolve(ctx, model.Props)
			if err != nil {
				return Result{}, fmt.Errorf("props: %w", err)
			}
			return res.WithRevalidate(0), nil
		}
	}
}
