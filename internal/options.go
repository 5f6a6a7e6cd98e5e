package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/hydrate/pkg/cache"
)

// Option configures the application.
type Option func(*App)

// WithRuntime binds the App to a runtime. Pages must be built with the same
// runtime's binders. Defaults to a server runtime using the App logger.
func WithRuntime(rt *Runtime) Option {
	return func(a *App) {
		if rt != nil {
			a.runtime = rt
		}
	}
}

// WithLogger sets the application logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare pages.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithPages registers pages directly, without a Handler.
func WithPages(pages ...Page) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, pageList(pages))
	}
}

type pageList []Page

func (pl pageList) Routes(r Router) {
	for _, p := range pl {
		r.Page(p)
	}
}

// WithDocument replaces the HTML document wrapping every full page render.
func WithDocument(fn DocumentFunc) Option {
	return func(a *App) {
		if fn != nil {
			a.document = fn
		}
	}
}

// WithStaticCache sets where generated static pages are kept.
// Use a cache.Redis to share pages between instances.
// Defaults to an in-memory cache.
//
// Example:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	hydrate.New(
//	    hydrate.WithStaticCache(hydrate.NewRedisStaticCache(client)),
//	)
func WithStaticCache(c cache.Cache[StaticEntry]) Option {
	return func(a *App) {
		if c != nil {
			a.staticCache = c
		}
	}
}

// WithLocales enables locale negotiation. The first match wins among the
// sources (default: ?locale= then the "locale" cookie), then Accept-Language.
// An empty default picks the first supported locale.
func WithLocales(defaultLocale string, supported []string, sources ...ExtractorSource) Option {
	return func(a *App) {
		var src []ExtractorSource
		if len(sources) > 0 {
			src = sources
		}
		a.locales = newLocaleResolver(defaultLocale, supported, src)
	}
}

// WithHealthChecks mounts /health/live and /health/ready. The readiness
// endpoint answers 503 when any named check fails.
//
//	hydrate.WithHealthChecks(map[string]hydrate.CheckFunc{"redis": redis.Healthcheck(client)})
func WithHealthChecks(checks map[string]CheckFunc) Option {
	return func(a *App) {
		a.health = &health{checks: checks}
	}
}

// WithErrorHandler sets a custom error handler for page errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom handler for unknown routes and pages
// returning NotFoundResult.
func WithNotFoundHandler(h http.HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	hydrate.New(
//	    hydrate.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		a.handlers = append(a.handlers, mount{
			pattern: strings.TrimSuffix(pattern, "/") + "/*",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/") {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Cache-Control", "public, max-age=3600")
				files.ServeHTTP(w, r)
			}),
		})
	}
}

type mount struct {
	handler http.Handler
	pattern string
}

func (m mount) Routes(r Router) {
	r.Handle(http.MethodGet, m.pattern, m.handler.ServeHTTP)
	r.Handle(http.MethodHead, m.pattern, m.handler.ServeHTTP)
}
