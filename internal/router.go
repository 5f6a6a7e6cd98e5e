package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
type Router interface {
	// Page registers a page. Invalid patterns panic at startup.
	Page(p Page)

	// Handle registers a plain endpoint, e.g. an API the page events call.
	Handle(method, pattern string, h http.HandlerFunc)

	// Group creates an inline route group.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given pattern.
	Mount(pattern string, h http.Handler)
}

// routerAdapter wraps chi.Router to implement the Router interface.
type routerAdapter struct {
	router chi.Router
	app    *App
	prefix string
}

func (r *routerAdapter) Page(p Page) {
	rt, err := compileRoute(p)
	if err != nil {
		panic(err)
	}
	r.app.addRoute(r.prefix, rt)

	h := r.app.pageHandler(rt)
	for _, pattern := range rt.patterns {
		r.router.Get(pattern, h)
		r.router.Head(pattern, h)
	}
}

func (r *routerAdapter) Handle(method, pattern string, h http.HandlerFunc) {
	r.router.Method(method, pattern, h)
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix + pattern})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.router.Use(mw...)
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}
