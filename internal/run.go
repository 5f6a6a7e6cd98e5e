package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	baseCtx          context.Context
	logger           *slog.Logger
	startupHooks     []func(context.Context) error
	shutdownHooks    []func(context.Context) error
	shutdownTimeout  time.Duration
	prerenderTimeout time.Duration
	skipPrerender    bool
}

// Logger sets the server logger. Defaults to the App logger.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the graceful shutdown, hooks included.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// PrerenderTimeout bounds static page generation at startup.
// Defaults to 2 minutes.
func PrerenderTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.prerenderTimeout = d
		}
	}
}

// SkipPrerender starts serving without generating static pages first.
// Pages are then generated on their first request.
func SkipPrerender() RunOption {
	return func(c *runConfig) {
		c.skipPrerender = true
	}
}

// StartupHook registers a function to run before the server accepts
// requests, after static pages are generated.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a cleanup function, run in registration order
// once the server stopped accepting requests.
//
//	hydrate.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the base context watched for shutdown alongside
// SIGINT and SIGTERM.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// Run generates the static pages, runs the startup hooks and serves on
// addr until the base context is done or the process is signalled.
// The static cache is closed after the shutdown hooks.
//
//	err := app.Run(":8080", hydrate.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := runConfig{
		baseCtx:          context.Background(),
		logger:           a.logger,
		shutdownTimeout:  defaultShutdownTimeout,
		prerenderTimeout: defaultPrerenderTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if addr == "" {
		addr = ":8080"
	}
	log := cfg.logger

	ctx, stop := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.startup(ctx, cfg); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           a.router,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return cfg.baseCtx },
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()), slog.Int("pages", len(a.routes)))
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	return a.shutdown(server, cfg)
}

func (a *App) startup(ctx context.Context, cfg runConfig) error {
	if !cfg.skipPrerender {
		pctx, cancel := context.WithTimeout(ctx, cfg.prerenderTimeout)
		err := a.Prerender(pctx)
		cancel()
		if err != nil {
			return fmt.Errorf("prerender: %w", err)
		}
	}
	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("startup hook: %w", err)
		}
	}
	return nil
}

func (a *App) shutdown(server *http.Server, cfg runConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			cfg.logger.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	if err := a.staticCache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("static cache: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		cfg.logger.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	cfg.logger.Info("shutdown completed")
	return nil
}
