package internal

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

// StaticPage declares one page bound through StaticProps.
type StaticPage struct {
	// PageEvent receives the normalized StaticPageContext. Optional.
	PageEvent Event
	// Customize decides the outcome once the events settled. Optional.
	// The revalidate interval of the returned result is kept.
	Customize func(ctx context.Context, scope *state.Scope, c *StaticContext) (Result, error)
}

// StaticPropsFunc computes the outcome of one static generation.
type StaticPropsFunc func(ctx context.Context, c *StaticContext) (Result, error)

// StaticProps returns a binder for pages generated once and served from
// cache. It behaves like ServerProps over the static context and keeps the
// revalidate interval of the result.
func (rt *Runtime) StaticProps(cfg SharedConfig) func(StaticPage) StaticPropsFunc {
	shared := Qualify(cfg.SharedEvents...)

	return func(page StaticPage) StaticPropsFunc {
		events := Qualify(append(shared[:len(shared):len(shared)], page.PageEvent)...)

		return func(ctx context.Context, c *StaticContext) (Result, error) {
			model, err := startModel(ctx, rt.logger, events, NormalizeStatic(c), nil)
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
			return res, nil
		}
	}
}
