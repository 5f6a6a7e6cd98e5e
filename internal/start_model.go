package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/hydrate/pkg/state"
)

// InitialStateKey is the reserved props key carrying the scope snapshot.
const InitialStateKey = "__INITIAL_STATE__"

// Props are the values handed to a page render.
type Props = map[string]any

// Model is the outcome of a settled run: the scope the events ran in and
// props holding its snapshot under InitialStateKey.
type Model struct {
	Scope *state.Scope
	Props Props
}

// Snapshot returns the serialized scope carried by the model.
func (m *Model) Snapshot() state.Values {
	v, _ := m.Props[InitialStateKey].(state.Values)
	return v
}

// StartModel dispatches events into scope one at a time, in order, waiting
// for each to settle before the next starts, then serializes the scope.
// A nil scope means a fresh one. Absent events are skipped.
// The first settlement failure aborts the run; no partial snapshot is returned.
func StartModel(ctx context.Context, events []Event, payload any, scope *state.Scope) (*Model, error) {
	return startModel(ctx, nil, events, payload, scope)
}

func startModel(ctx context.Context, log *slog.Logger, events []Event, payload any, scope *state.Scope) (*Model, error) {
	if scope == nil {
		scope = state.Fork()
	}

	for _, ev := range events {
		if !IsEvent(ev) {
			continue
		}

		start := time.Now()
		err := ev.Dispatch(ctx, scope, payload)
		if log != nil {
			log.DebugContext(ctx, "event settled",
				slog.String("sid", ev.SID()),
				slog.String("scope_id", scope.ID()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("failed", err != nil),
			)
		}
		if err != nil {
			return nil, fmt.Errorf("settle %s: %w", ev.SID(), err)
		}
	}

	return &Model{
		Scope: scope,
		Props: Props{InitialStateKey: state.Serialize(scope)},
	}, nil
}
