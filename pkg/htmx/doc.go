// Package htmx detects htmx requests and writes the response headers the
// hydrate host needs for partial page navigations.
//
// An htmx navigation receives only the rendered page body with the page
// URL pushed into history; every other request gets the full document.
package htmx
