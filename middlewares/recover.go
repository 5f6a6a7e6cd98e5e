package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default stack capture size in bytes.
const DefaultStackSize = 4096

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// AsPanicError extracts a PanicError from err.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

type recoverConfig struct {
	stackSize int
	logger    *slog.Logger
	onPanic   func(w http.ResponseWriter, r *http.Request, err error)
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the captured stack size. Zero disables capture.
func WithRecoverStackSize(n int) RecoverOption {
	return func(c *recoverConfig) { c.stackSize = max(n, 0) }
}

// WithRecoverLogger sets the logger for recovered panics.
// Default: slog.Default().
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(c *recoverConfig) { c.logger = l }
}

// WithRecoverHandler sets the responder for recovered panics. It receives
// a *PanicError. Default: plain 500.
func WithRecoverHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) RecoverOption {
	return func(c *recoverConfig) { c.onPanic = fn }
}

// Recover turns a panic in next into a logged PanicError and a 500 response.
// http.ErrAbortHandler is re-raised so the server aborts the connection.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := recoverConfig{
		stackSize: DefaultStackSize,
		onPanic: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				pe := &PanicError{Value: v}
				if cfg.stackSize > 0 {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
				}

				cfg.logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", v),
					slog.String("stack", string(pe.Stack)),
				)
				cfg.onPanic(w, r, pe)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
