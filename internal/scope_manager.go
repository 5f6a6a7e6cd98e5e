package internal

import (
	"log/slog"
	"maps"
	"reflect"
	"sync"
	"unsafe"

	"github.com/dmitrymomot/hydrate/pkg/logger"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

// ScopeManagerOption configures a ScopeManager.
type ScopeManagerOption func(*ScopeManager)

// WithScopeLogger sets the logger used for scope transitions.
func WithScopeLogger(l *slog.Logger) ScopeManagerOption {
	return func(m *ScopeManager) {
		if l != nil {
			m.logger = l
		}
	}
}

// ScopeManager owns the current scope of a client session.
//
// On the server every Resolve forks a new scope from the delivered values
// and nothing is remembered. On the client the first Resolve forks the
// session scope; later calls with the same values map return it unchanged,
// and calls with a different map replace it with a scope forked from the
// current snapshot overlaid with the new values.
type ScopeManager struct {
	current *state.Scope
	last    unsafe.Pointer
	logger  *slog.Logger
	env     Env
	mu      sync.Mutex
}

// NewScopeManager creates a manager for the given environment.
func NewScopeManager(env Env, opts ...ScopeManagerOption) *ScopeManager {
	m := &ScopeManager{
		env:    env,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Env returns the environment the manager was created for.
func (m *ScopeManager) Env() Env {
	return m.env
}

// Resolve returns the scope for a render pass with the delivered values.
// Values maps are compared by identity, not content.
func (m *ScopeManager) Resolve(values state.Values) *state.Scope {
	if m.env.IsServer() {
		return state.Fork(state.WithValues(values))
	}

	ref := identity(values)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		m.current = state.Fork(state.WithValues(values))
		m.last = ref
		m.logger.Debug("client scope created", slog.String("scope_id", m.current.ID()))
		return m.current
	}

	if ref == m.last {
		return m.current
	}

	next := state.Serialize(m.current)
	maps.Copy(next, values)
	prev := m.current
	m.current = state.Fork(state.WithValues(next))
	m.last = ref
	m.logger.Debug("client scope replaced",
		slog.String("scope_id", m.current.ID()),
		slog.String("previous_scope_id", prev.ID()),
		slog.Int("values", len(values)),
	)
	return m.current
}

// Current returns the client session scope, or nil when none exists yet
// or the manager runs on the server.
func (m *ScopeManager) Current() *state.Scope {
	if m.env.IsServer() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Replace swaps the client session scope. It is a no-op on the server.
func (m *ScopeManager) Replace(scope *state.Scope) {
	if m.env.IsServer() || scope == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = scope
}

// identity returns the address backing a map; nil for a nil map.
func identity(values state.Values) unsafe.Pointer {
	if values == nil {
		return nil
	}
	return reflect.ValueOf(values).UnsafePointer()
}
