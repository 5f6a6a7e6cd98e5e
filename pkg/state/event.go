package state

import (
	"context"
	"fmt"
)

// Void is the payload of events that carry no data.
type Void = struct{}

// Unit is anything that can be launched with a T or observed for T values:
// events, stores and effects.
type Unit[T any] interface {
	unit() *node
	accepts(T)
}

// AnyEvent is an event with its payload type erased. It lets callers keep
// heterogeneous events in one list and dispatch them uniformly.
type AnyEvent interface {
	// SID returns the stable identifier, or a process-local name when the
	// event was declared without one.
	SID() string

	// Dispatch launches the event into scope with payload and waits for settlement.
	// Events declared with a [Void] payload ignore whatever payload they get.
	Dispatch(ctx context.Context, scope *Scope, payload any) error

	// Clone declares a new event with the same payload type.
	Clone(sid string) AnyEvent

	unit() *node
}

// Event is an identified trigger carrying a T.
type Event[T any] struct {
	n *node
}

// NewEvent declares an event. The sid must be stable across processes when
// the event takes part in snapshot or cache keys; it may be empty otherwise.
func NewEvent[T any](sid string) *Event[T] {
	return &Event[T]{n: newNode(kindEvent, sid, typeOf[T]())}
}

func (e *Event[T]) unit() *node { return e.n }
func (e *Event[T]) accepts(T)   {}

// SID returns the event identifier.
func (e *Event[T]) SID() string {
	return e.n.String()
}

func (e *Event[T]) String() string {
	return e.n.String()
}

// Dispatch implements AnyEvent.
func (e *Event[T]) Dispatch(ctx context.Context, scope *Scope, payload any) error {
	v, err := coerce[T](payload)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", e, err)
	}
	return AllSettled[T](ctx, e, scope, v)
}

// Clone implements AnyEvent.
func (e *Event[T]) Clone(sid string) AnyEvent {
	return NewEvent[T](sid)
}

// Watch calls fn every time the event fires in any scope.
// fn runs on the dispatching goroutine and must not block.
func (e *Event[T]) Watch(fn func(ctx context.Context, scope *Scope, payload T)) {
	e.n.link(func(k *kernel, v any) {
		fn(k.ctx, k.scope, cast[T](v))
	})
}

// AllSettled launches unit in scope with payload and blocks until every
// computation it triggers, directly or transitively, has finished.
// Errors from effect handlers and panics in pure steps are joined.
func AllSettled[T any](ctx context.Context, u Unit[T], scope *Scope, payload T) error {
	if scope == nil {
		return ErrNoScope
	}
	k := newKernel(ctx, scope)
	k.launch(u.unit(), payload)
	return k.settle()
}

func coerce[T any](payload any) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}

	var zero T
	if payload == nil {
		return zero, nil
	}
	if _, ok := any(zero).(Void); ok {
		return zero, nil
	}
	return zero, fmt.Errorf("%w: want %T, got %T", ErrPayloadType, zero, payload)
}
