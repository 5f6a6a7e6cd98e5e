package internal

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/hydrate/pkg/cache"
	"github.com/dmitrymomot/hydrate/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
	defaultPrerenderTimeout  = 2 * time.Minute
)

// App serves pages: it plays the framework role around a Runtime, calling
// the props functions of each page and rendering the result with the
// snapshot embedded in the document.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router          chi.Router
	runtime         *Runtime
	errorHandler    ErrorHandler
	notFoundHandler http.HandlerFunc
	document        DocumentFunc
	staticCache     cache.Cache[StaticEntry]
	locales         *localeResolver
	logger          *slog.Logger
	middlewares     []Middleware
	handlers        []Handler
	health          *health
	routes          []*route
}

// New creates a new application with the given options.
//
// Example:
//
//	app := hydrate.New(
//	    hydrate.WithRuntime(rt),
//	    hydrate.WithMiddleware(middlewares.RequestID(), middlewares.Recover(log)),
//	    hydrate.WithHandlers(blog.NewHandler(rt)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:   chi.NewRouter(),
		logger:   logger.NewNope(),
		document: DefaultDocument,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.runtime == nil {
		a.runtime = NewRuntime(RuntimeLogger(a.logger))
	}
	if a.staticCache == nil {
		a.staticCache = cache.NewMemory[StaticEntry](cache.WithMaxEntries(defaultStaticEntries))
	}
	if a.locales == nil {
		a.locales = newLocaleResolver("", nil, nil)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// Runtime returns the runtime the pages are bound to.
func (a *App) Runtime() *Runtime {
	return a.runtime
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	a.router.Use(a.middlewares...)

	if a.notFoundHandler != nil {
		a.router.NotFound(a.notFoundHandler)
	}

	r := &routerAdapter{router: a.router, app: a}
	if a.health != nil {
		a.health.logger = a.logger
		a.health.Routes(r)
	}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) addRoute(prefix string, rt *route) {
	if prefix != "" {
		full := strings.TrimSuffix(prefix, "/") + rt.page.Pattern
		if rt.page.Pattern == "/" {
			full = strings.TrimSuffix(prefix, "/")
		}
		rt.page.Pattern = full
	}
	a.routes = append(a.routes, rt)
}

// handleError renders err unless the response has already been written.
func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if rw, ok := w.(*responseWriter); ok && rw.Written() {
		a.logger.ErrorContext(r.Context(), "error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		a.errorHandler(w, r, err)
		return
	}

	code, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code, msg = httpErr.StatusCode(), httpErr.Message
	}
	if code >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "page failed", slog.Any("error", err))
	}
	http.Error(w, msg, code)
}
