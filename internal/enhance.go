package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/hydrate/pkg/cache"
	"github.com/dmitrymomot/hydrate/pkg/logger"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

// EnhanceOptions controls how a wrapped event forwards to its original.
type EnhanceOptions struct {
	// RunOnce forwards at most once per scope.
	RunOnce bool `json:"runOnce"`
}

// key returns the canonical encoding of the options.
// Omitted fields encode the same as explicit defaults.
func (o EnhanceOptions) key() string {
	data, _ := json.Marshal(o)
	return string(data)
}

// EnhancerOption configures an Enhancer.
type EnhancerOption func(*Enhancer)

// WithEphemeralRecords excludes the "already called" records from snapshots.
// A replaced scope then starts with every record reset, so run-once events
// fire again after each client navigation.
func WithEphemeralRecords() EnhancerOption {
	return func(e *Enhancer) {
		e.ephemeral = true
	}
}

// WithEnhancerLogger sets the logger used for cache misses.
func WithEnhancerLogger(l *slog.Logger) EnhancerOption {
	return func(e *Enhancer) {
		if l != nil {
			e.logger = l
		}
	}
}

// Enhancer wraps lifecycle events with a per-scope "run once" guard and
// memoizes the wrapped events by (event sid, options).
type Enhancer struct {
	events    *cache.Memory[Event]
	logger    *slog.Logger
	mu        sync.Mutex
	ephemeral bool
}

// NewEnhancer creates an Enhancer with an empty cache.
func NewEnhancer(opts ...EnhancerOption) *Enhancer {
	e := &Enhancer{
		events: cache.NewMemory[Event](cache.WithDefaultTTL(cache.NoExpiration), cache.WithCleanupInterval(0)),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance returns the wrapped counterpart of event.
// Repeated calls with equal options return the same wrapped event.
//
// The wrapped event forwards its payload unchanged to event. When
// opts.RunOnce is set, forwarding is suppressed once event has fired in
// the scope, whoever fired it.
func (e *Enhancer) Enhance(event Event, opts EnhanceOptions) (Event, error) {
	if err := assertEvent(event); err != nil {
		return nil, err
	}

	ctx := context.Background()
	key := event.SID() + "-" + opts.key()

	e.mu.Lock()
	defer e.mu.Unlock()

	if wrapped, err := e.events.Get(ctx, key); err == nil {
		return wrapped, nil
	}

	wrapped := event.Clone(key)
	called := state.NewStore(false,
		state.WithSID(key+"/called"),
		state.WithSerialize(!e.ephemeral),
	)
	state.Flag(called, event)

	runOnce := opts.RunOnce
	state.Gate(wrapped, called, func(done bool) bool {
		return !runOnce || !done
	}, event)

	if err := e.events.Set(ctx, key, wrapped, cache.NoExpiration); err != nil {
		return nil, fmt.Errorf("enhance %s: %w", event.SID(), err)
	}
	e.logger.Debug("event enhanced",
		slog.String("sid", event.SID()),
		slog.Bool("run_once", runOnce),
	)
	return wrapped, nil
}

// MustEnhance is like Enhance but panics on an invalid event.
func (e *Enhancer) MustEnhance(event Event, opts EnhanceOptions) Event {
	wrapped, err := e.Enhance(event, opts)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// Len returns the number of wrapped events built so far.
func (e *Enhancer) Len() int {
	return e.events.Len()
}

// Reset forgets every wrapped event. Previously returned events keep
// working; the next Enhance call builds a new one.
func (e *Enhancer) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.events.Clear(context.Background())
}
