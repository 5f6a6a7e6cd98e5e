package internal

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/hydrate/pkg/logger"
)

type routeKey struct{}

func withRoute(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routeKey{}, pattern)
}

// RouteFromContext returns the page pattern being served.
func RouteFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(routeKey{}).(string)
	return v, ok && v != ""
}

// RouteExtractor adds "route" to log entries written while a page is served.
func RouteExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := RouteFromContext(ctx); ok {
			return slog.String("route", v), true
		}
		return slog.Attr{}, false
	}
}

// ScopeExtractor adds "scope_id" to log entries written while a page renders.
func ScopeExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if scope, ok := ScopeFromContext(ctx); ok {
			return slog.String("scope_id", scope.ID()), true
		}
		return slog.Attr{}, false
	}
}
