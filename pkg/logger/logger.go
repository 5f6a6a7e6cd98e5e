package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls one attribute out of a context. It is called on
// every record so request-scoped values stay current.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures New and NewWithSentry.
type Option func(*config)

type config struct {
	level      slog.Leveler
	out        io.Writer
	text       bool
	extractors []ContextExtractor
}

// WithLevel sets the minimum level written. Default: slog.LevelInfo.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) { c.level = l }
}

// WithOutput sets the destination. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithTextFormat switches from JSON to logfmt-style text output.
func WithTextFormat() Option {
	return func(c *config) { c.text = true }
}

// WithExtractors appends context extractors.
func WithExtractors(ex ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, ex...) }
}

func newConfig(opts []Option) config {
	c := config{level: slog.LevelInfo, out: os.Stdout}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: c.level}
	if c.text {
		return slog.NewTextHandler(c.out, ho)
	}
	return slog.NewJSONHandler(c.out, ho)
}

// New creates a structured logger.
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug), logger.WithExtractors(middlewares.RequestIDExtractor()))
func New(opts ...Option) *slog.Logger {
	c := newConfig(opts)
	return slog.New(Decorate(c.handler(), c.extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
