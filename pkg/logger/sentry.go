package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// MinLevel is the lowest level kept as a Sentry log entry. Errors always
	// become issues.
	MinLevel slog.Level
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
type Flush func(timeout time.Duration) bool

// NewWithSentry creates a logger that writes locally and mirrors warnings
// and errors to Sentry. With an empty DSN or a failed client init it falls
// back to a local-only logger; the returned Flush is then a no-op.
func NewWithSentry(cfg SentryConfig, opts ...Option) (*slog.Logger, Flush) {
	c := newConfig(opts)
	local := c.handler()
	noflush := func(time.Duration) bool { return true }

	if cfg.DSN == "" {
		return slog.New(Decorate(local, c.extractors...)), noflush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("sentry init failed", slog.Any("error", err))
		return slog.New(Decorate(local, c.extractors...)), noflush
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel > slog.LevelWarn {
		logLevels = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(Decorate(fanout{local, remote}, c.extractors...)), sentry.Flush
}
