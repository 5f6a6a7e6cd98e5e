package state

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// StoreOption configures a store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	sid       string
	serialize bool
}

// WithSID sets the stable identifier used in snapshots.
// Stores without a sid are never serialized.
func WithSID(sid string) StoreOption {
	return func(c *storeConfig) {
		c.sid = sid
	}
}

// WithSerialize controls whether a store with a sid is included in snapshots.
// Default: true.
func WithSerialize(enabled bool) StoreOption {
	return func(c *storeConfig) {
		c.serialize = enabled
	}
}

// update is launched into a store instead of a value when the next value
// depends on the current one; it is applied when the write executes.
type update func(cur any) any

// Store holds a T per scope. Updates that produce a value deeply equal to
// the current one are skipped and do not propagate.
type Store[T any] struct {
	n       *node
	initial T
}

// NewStore declares a store with the given default value.
func NewStore[T any](initial T, opts ...StoreOption) *Store[T] {
	cfg := &storeConfig{serialize: true}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Store[T]{initial: initial}
	s.n = newNode(kindStore, cfg.sid, typeOf[T]())
	s.n.serializable = cfg.serialize
	s.n.run = func(k *kernel, v any) (any, bool) {
		var next T
		if fn, ok := v.(update); ok {
			next = cast[T](fn(s.Get(k.scope)))
		} else {
			next = cast[T](v)
		}
		if cur, err := s.Read(k.scope); err == nil && reflect.DeepEqual(cur, next) {
			return nil, false
		}
		k.scope.write(s.n, next)
		return next, true
	}
	return s
}

func (s *Store[T]) unit() *node { return s.n }
func (s *Store[T]) accepts(T)   {}

// SID returns the store identifier, empty when none was set.
func (s *Store[T]) SID() string {
	return s.n.sid
}

func (s *Store[T]) String() string {
	return s.n.String()
}

// Get returns the store value in scope. Snapshot values that fail to decode
// fall back to the default; use Read to observe the error.
func (s *Store[T]) Get(scope *Scope) T {
	v, err := s.Read(scope)
	if err != nil {
		return s.initial
	}
	return v
}

// Read returns the store value in scope, decoding a seeded snapshot value
// on first access.
func (s *Store[T]) Read(scope *Scope) (T, error) {
	if scope == nil {
		return s.initial, ErrNoScope
	}
	if v, ok := scope.read(s.n); ok {
		return cast[T](v), nil
	}
	raw, ok := scope.seed(s.n.sid)
	if !ok {
		return s.initial, nil
	}
	v, err := decode[T](raw)
	if err != nil {
		return s.initial, fmt.Errorf("%w: %s: %w", ErrDecode, s, err)
	}
	scope.write(s.n, v)
	return v, nil
}

// On updates store with reducer every time trigger fires.
func On[S, P any](store *Store[S], trigger Unit[P], reducer func(state S, payload P) S) *Store[S] {
	trigger.unit().link(func(k *kernel, v any) {
		k.launch(store.n, update(func(cur any) any {
			return reducer(cast[S](cur), cast[P](v))
		}))
	})
	return store
}

// Reset sets the store back to its default value whenever trigger fires.
func Reset[S, P any](store *Store[S], trigger Unit[P]) *Store[S] {
	trigger.unit().link(func(k *kernel, _ any) {
		k.launch(store.n, store.initial)
	})
	return store
}

// Restore declares a store that holds the last payload of ev.
func Restore[T any](ev Unit[T], initial T, opts ...StoreOption) *Store[T] {
	s := NewStore(initial, opts...)
	ev.unit().link(func(k *kernel, v any) {
		k.launch(s.n, v)
	})
	return s
}

// decode turns a snapshot value into T. Values that already are a T are
// cloned unless they are scalars; anything else goes through JSON.
func decode[T any](raw any) (T, error) {
	if v, ok := raw.(T); ok && isScalar(reflect.TypeOf(v)) {
		return v, nil
	}

	var out T
	if raw == nil {
		return out, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// cast asserts v to T. A nil v is the zero T, which covers interface
// payloads such as error.
func cast[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

func isScalar(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
