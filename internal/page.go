package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// PageRender builds the page component from its props.
// The reserved snapshot key is already removed; the scope is available
// through ScopeFromContext while the component renders.
type PageRender func(props Props) templ.Component

// Page is a route served by the App. Exactly one of Initial, Server or
// Static computes its props; a page with none renders with empty props.
type Page struct {
	// Pattern uses bracket placeholders: "/blog/[slug]", "/docs/[...path]",
	// "/shop/[[...filters]]" (optional catch-all).
	Pattern string
	Render  PageRender
	Initial InitialPropsFunc
	Server  ServerPropsFunc
	Static  StaticPropsFunc
	// Paths lists the parameter sets of a static page generated at startup.
	Paths func(ctx context.Context) ([]url.Values, error)
}

// route is a Page compiled for chi.
type route struct {
	page     Page
	patterns []string
	params   []string
	catchAll string
}

// compileRoute translates a bracket pattern into chi patterns.
// An optional catch-all also matches the bare prefix.
func compileRoute(p Page) (*route, error) {
	if !strings.HasPrefix(p.Pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, p.Pattern)
	}
	if p.Render == nil {
		return nil, fmt.Errorf("%w: %q has no render func", ErrInvalidPattern, p.Pattern)
	}

	r := &route{page: p}
	segments := strings.Split(strings.Trim(p.Pattern, "/"), "/")
	out := make([]string, 0, len(segments))
	optional := false

	for i, seg := range segments {
		last := i == len(segments)-1
		switch {
		case strings.HasPrefix(seg, "[[...") && strings.HasSuffix(seg, "]]"):
			if !last {
				return nil, fmt.Errorf("%w: %q: catch-all must be the last segment", ErrInvalidPattern, p.Pattern)
			}
			r.catchAll = seg[5 : len(seg)-2]
			optional = true
			out = append(out, "*")
		case strings.HasPrefix(seg, "[...") && strings.HasSuffix(seg, "]"):
			if !last {
				return nil, fmt.Errorf("%w: %q: catch-all must be the last segment", ErrInvalidPattern, p.Pattern)
			}
			r.catchAll = seg[4 : len(seg)-1]
			out = append(out, "*")
		case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
			name := seg[1 : len(seg)-1]
			if name == "" || strings.ContainsAny(name, "[].") {
				return nil, fmt.Errorf("%w: %q: bad placeholder %q", ErrInvalidPattern, p.Pattern, seg)
			}
			r.params = append(r.params, name)
			out = append(out, "{"+name+"}")
		case strings.ContainsAny(seg, "[]"):
			return nil, fmt.Errorf("%w: %q: bad segment %q", ErrInvalidPattern, p.Pattern, seg)
		default:
			out = append(out, seg)
		}
	}

	r.patterns = []string{"/" + strings.Join(out, "/")}
	if optional {
		r.patterns = append(r.patterns, "/"+strings.Join(out[:len(out)-1], "/"))
	}
	return r, nil
}

// pathParams reads the path parameters of a matched request.
func (rt *route) pathParams(req *http.Request) url.Values {
	params := url.Values{}
	for _, name := range rt.params {
		if v := chi.URLParam(req, name); v != "" {
			params.Set(name, v)
		}
	}
	if rt.catchAll != "" {
		for part := range strings.SplitSeq(chi.URLParam(req, "*"), "/") {
			if part != "" {
				params.Add(rt.catchAll, part)
			}
		}
	}
	return params
}

// buildPath fills the pattern placeholders with params. Used to address
// static pages listed by Paths.
func (rt *route) buildPath(params url.Values) string {
	segments := strings.Split(strings.Trim(rt.page.Pattern, "/"), "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "[[...") || strings.HasPrefix(seg, "[..."):
			for _, v := range params[rt.catchAll] {
				out = append(out, url.PathEscape(v))
			}
		case strings.HasPrefix(seg, "["):
			out = append(out, url.PathEscape(params.Get(seg[1:len(seg)-1])))
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/")
}
