package state

import (
	"context"
	"fmt"
)

// Effect is a unit whose handler does the side work: API calls, storage
// lookups. Each launch runs the handler on its own goroutine; the result is
// fed back into the graph through DoneData or FailData.
//
// A handler error is a regular outcome: it fires FailData and settlement
// still succeeds. A missing handler or a panic fails the settlement.
type Effect[P, R any] struct {
	n        *node
	handler  func(ctx context.Context, params P) (R, error)
	DoneData *Event[R]
	FailData *Event[error]
}

// NewEffect declares an effect. The handler may be nil and supplied per
// scope with WithHandler.
func NewEffect[P, R any](sid string, handler func(ctx context.Context, params P) (R, error)) *Effect[P, R] {
	fx := &Effect[P, R]{handler: handler}
	fx.n = newNode(kindEffect, sid, typeOf[P]())

	doneSID, failSID := "", ""
	if sid != "" {
		doneSID, failSID = sid+".doneData", sid+".failData"
	}
	fx.DoneData = NewEvent[R](doneSID)
	fx.FailData = NewEvent[error](failSID)

	fx.n.run = func(k *kernel, v any) (any, bool) {
		params := cast[P](v)
		h := fx.handlerFor(k.scope)
		k.spawn(fx.n, func() func() {
			if h == nil {
				err := fmt.Errorf("%w: %s", ErrNoHandler, fx.n)
				return func() {
					k.fail(err)
					k.launch(fx.FailData.n, err)
				}
			}
			res, err := h(k.ctx, params)
			return func() {
				if err != nil {
					k.launch(fx.FailData.n, err)
					return
				}
				k.launch(fx.DoneData.n, res)
			}
		})
		return nil, false
	}
	return fx
}

func (fx *Effect[P, R]) unit() *node { return fx.n }
func (fx *Effect[P, R]) accepts(P)   {}

func (fx *Effect[P, R]) String() string {
	return fx.n.String()
}

func (fx *Effect[P, R]) handlerFor(scope *Scope) func(context.Context, P) (R, error) {
	if h, ok := scope.handler(fx.n); ok {
		return h.(func(context.Context, P) (R, error))
	}
	return fx.handler
}
