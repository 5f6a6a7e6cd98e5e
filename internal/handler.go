package internal

import "net/http"

// Handler declares pages and endpoints on a router.
//
// Example:
//
//	type Blog struct {
//	    gssp func(hydrate.ServerPage) hydrate.ServerPropsFunc
//	}
//
//	func (b *Blog) Routes(r hydrate.Router) {
//	    r.Page(hydrate.Page{
//	        Pattern: "/blog/[slug]",
//	        Server:  b.gssp(hydrate.ServerPage{PageEvent: post.PageStarted}),
//	        Render:  views.Post,
//	    })
//	}
type Handler interface {
	Routes(r Router)
}

// Middleware wraps an http.Handler to add cross-cutting concerns.
type Middleware = func(next http.Handler) http.Handler

// ErrorHandler renders an error that escaped a page.
// It is not called when the response has already been written.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
