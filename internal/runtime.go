package internal

import (
	"log/slog"

	"github.com/dmitrymomot/hydrate/pkg/logger"
)

// Runtime binds lifecycle adapters, the root component and page-event
// dispatch to one environment, one enhancer and one scope manager.
// A Runtime is safe for concurrent use.
type Runtime struct {
	enhancer *Enhancer
	scopes   *ScopeManager
	logger   *slog.Logger
	env      Env
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// RuntimeEnv sets the environment. Defaults to EnvServer.
func RuntimeEnv(env Env) RuntimeOption {
	return func(rt *Runtime) {
		if env != "" {
			rt.env = env
		}
	}
}

// RuntimeLogger sets the runtime logger.
// If nil, logging is disabled.
func RuntimeLogger(l *slog.Logger) RuntimeOption {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// RuntimeEnhancer shares an Enhancer between runtimes.
func RuntimeEnhancer(e *Enhancer) RuntimeOption {
	return func(rt *Runtime) {
		if e != nil {
			rt.enhancer = e
		}
	}
}

// RuntimeScopes sets the scope manager. Its environment must match the
// runtime's.
func RuntimeScopes(m *ScopeManager) RuntimeOption {
	return func(rt *Runtime) {
		if m != nil {
			rt.scopes = m
		}
	}
}

// NewRuntime creates a runtime. Missing collaborators are created with the
// runtime's environment and logger.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		env:    EnvServer,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(rt)
	}

	if rt.enhancer == nil {
		rt.enhancer = NewEnhancer(WithEnhancerLogger(rt.logger))
	}
	if rt.scopes == nil {
		rt.scopes = NewScopeManager(rt.env, WithScopeLogger(rt.logger))
	}
	return rt
}

// Env returns the runtime environment.
func (rt *Runtime) Env() Env { return rt.env }

// Enhancer returns the enhancer wrapping shared and page events.
func (rt *Runtime) Enhancer() *Enhancer { return rt.enhancer }

// Scopes returns the scope manager.
func (rt *Runtime) Scopes() *ScopeManager { return rt.scopes }
