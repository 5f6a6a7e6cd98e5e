package internal

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultHealthTimeout = 5 * time.Second

// CheckFunc probes one dependency. redis.Healthcheck returns one.
type CheckFunc func(ctx context.Context) error

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type health struct {
	checks map[string]CheckFunc
	logger *slog.Logger
}

func (h *health) Routes(r Router) {
	r.Handle(http.MethodGet, "/health/live", func(w http.ResponseWriter, _ *http.Request) {
		_ = writeJSON(w, http.StatusOK, healthStatus{Status: "ok"})
	})
	r.Handle(http.MethodGet, "/health/ready", h.ready)
}

// ready runs every check concurrently under one deadline. A failed check
// does not cancel the others.
func (h *health) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultHealthTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		g   errgroup.Group
		res = healthStatus{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	)
	for name, check := range h.checks {
		g.Go(func() error {
			state := "ok"
			if err := check(ctx); err != nil {
				state = err.Error()
				h.logger.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			res.Checks[name] = state
			if state != "ok" {
				res.Status = "unavailable"
			}
			return nil
		})
	}
	_ = g.Wait()

	code := http.StatusOK
	if res.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	_ = writeJSON(w, code, res)
}
