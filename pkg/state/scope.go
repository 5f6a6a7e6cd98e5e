package state

import (
	"context"
	"maps"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/copystructure"
)

// Values is a flat snapshot: stable store identifier (sid) to plain value.
type Values = map[string]any

// Scope is an isolated instance of the whole unit graph.
// It holds the current value of every store touched in it, the values it was
// forked with and per-scope effect handler overrides.
type Scope struct {
	values   map[*node]any
	initial  map[string]any
	handlers map[*node]any
	id       string
	mu       sync.RWMutex
}

// ForkOption configures a new scope.
type ForkOption func(*Scope)

// WithValues seeds the scope with a snapshot. The map is copied.
func WithValues(values Values) ForkOption {
	return func(s *Scope) {
		for sid, v := range values {
			s.initial[sid] = v
		}
	}
}

// WithHandler overrides an effect handler inside the forked scope only.
// Useful for tests and for per-request API clients.
func WithHandler[P, R any](fx *Effect[P, R], handler func(ctx context.Context, params P) (R, error)) ForkOption {
	return func(s *Scope) {
		if fx != nil && handler != nil {
			s.handlers[fx.n] = handler
		}
	}
}

// Fork creates a fresh, independent scope.
func Fork(opts ...ForkOption) *Scope {
	s := &Scope{
		id:       uuid.NewString(),
		values:   make(map[*node]any),
		initial:  make(map[string]any),
		handlers: make(map[*node]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the scope identifier, used for log correlation.
func (s *Scope) ID() string {
	return s.id
}

func (s *Scope) String() string {
	return "scope " + s.id
}

func (s *Scope) read(n *node) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[n]
	return v, ok
}

func (s *Scope) write(n *node, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[n] = v
}

func (s *Scope) seed(sid string) (any, bool) {
	if sid == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.initial[sid]
	return v, ok
}

func (s *Scope) handler(n *node) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[n]
	return h, ok
}

// Serialize extracts a snapshot of the scope: the values it was forked with
// overlaid by every touched store that has a sid and is not excluded from
// serialization. Composite values are deep copies, so the snapshot can be
// changed without touching the scope.
func Serialize(s *Scope) Values {
	if s == nil {
		return Values{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Values, len(s.initial)+len(s.values))
	maps.Copy(out, s.initial)
	for n, v := range s.values {
		if n.sid == "" || n.kind != kindStore {
			continue
		}
		if !n.serializable {
			delete(out, n.sid)
			continue
		}
		out[n.sid] = v
	}
	for sid, v := range out {
		out[sid] = detach(v)
	}
	return out
}

// detach returns a deep copy of composite values. Values that cannot be
// copied are returned as is.
func detach(v any) any {
	if isScalar(reflect.TypeOf(v)) {
		return v
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}
