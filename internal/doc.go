// Package internal implements hydrate: the page runtime that connects a
// state scope to server rendering, and the HTTP host that serves pages.
//
// Import "github.com/dmitrymomot/hydrate", which re-exports the public API.
//
// # Runtime
//
// A [Runtime] owns an [Enhancer], which wraps shared events so they run once
// per scope, and a [ScopeManager], which keeps the client scope in sync with
// each page snapshot. Its binders produce page props functions:
//
//   - InitialProps runs the shared and page events for a navigation
//   - ServerProps runs them per request and may redirect or 404
//   - StaticProps runs them at build or revalidation time
//
// Each binder serializes the settled scope into the page props under
// [InitialStateKey]. [Runtime.Root] splits it off again, resolves the scope
// and renders the page with the scope in its context.
//
// # Host
//
// [App] compiles file-style page patterns ("/blog/[slug]",
// "/docs/[...path]") into chi routes and serves each page as a full
// document, an htmx partial or props JSON for client navigations.
// Static pages are cached in a [cache.Cache] and generated ahead of time
// by [App.Prerender].
package internal
