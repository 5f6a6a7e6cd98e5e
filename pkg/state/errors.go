package state

import "errors"

var (
	// ErrNoScope is returned when a dispatch targets a nil scope.
	ErrNoScope = errors.New("state: scope is required")

	// ErrPayloadType is returned when an erased dispatch carries a payload
	// the event cannot accept.
	ErrPayloadType = errors.New("state: payload type mismatch")

	// ErrNoHandler is returned when an effect without a handler is launched.
	ErrNoHandler = errors.New("state: effect has no handler")

	// ErrPanic wraps a panic recovered while running a graph step.
	ErrPanic = errors.New("state: panic during settlement")

	// ErrDecode is returned when a snapshot value cannot be decoded into the store type.
	ErrDecode = errors.New("state: failed to decode snapshot value")
)
