// Package logger builds slog loggers with context-derived attributes and
// optional Sentry mirroring.
//
// A [ContextExtractor] turns a context value into an attribute; [Decorate]
// applies extractors to any handler. The hydrate host ships extractors for
// the matched route and the active scope, and the request ID middleware
// ships one for request IDs:
//
//	log, flush := logger.NewWithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")},
//	    logger.WithExtractors(middlewares.RequestIDExtractor(), hydrate.RouteExtractor()),
//	)
//	defer flush(2 * time.Second)
package logger
