package internal

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

// Event is a lifecycle event with its payload type erased.
// Page events take a PageContext (or StaticPageContext); events declared
// with a state.Void payload ignore the context they are dispatched with.
type Event = state.AnyEvent

// IsEvent reports whether v is a usable lifecycle event.
// Nil interfaces and typed nil pointers are treated as absent slots.
func IsEvent(v any) bool {
	ev, ok := v.(Event)
	if !ok || ev == nil {
		return false
	}
	rv := reflect.ValueOf(ev)
	return rv.Kind() != reflect.Pointer || !rv.IsNil()
}

// Qualify drops absent events and keeps the order of the rest.
func Qualify(events ...Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if IsEvent(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// assertEvent fails fast on values that cannot be dispatched.
func assertEvent(v any) error {
	if !IsEvent(v) {
		return fmt.Errorf("%w: %T", ErrInvalidEvent, v)
	}
	return nil
}
