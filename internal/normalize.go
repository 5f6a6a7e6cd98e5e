package internal

import (
	"net/url"
	"slices"
	"strings"
)

// NormalizeNavigation builds the page context of a client route change.
func NormalizeNavigation(env Env, nav *Navigation) PageContext {
	if nav == nil {
		nav = &Navigation{}
	}
	pc := PageContext{
		Env:           env,
		Route:         nav.Route,
		Pathname:      nav.Pathname,
		AsPath:        nav.AsPath,
		Locale:        nav.Locale,
		Locales:       slices.Clone(nav.Available),
		DefaultLocale: nav.DefaultLocale,
	}
	pc.Params, pc.Query = splitQuery(nav.Query, nav.Route)
	return pc
}

// NormalizeInitial builds the page context of an initial-props pass.
// The pathname doubles as the route pattern.
func NormalizeInitial(env Env, c *InitialContext) PageContext {
	if c == nil {
		c = &InitialContext{}
	}
	pc := PageContext{
		Env:           env,
		Route:         c.Pathname,
		Pathname:      c.Pathname,
		AsPath:        c.AsPath,
		Locale:        c.Locale,
		Locales:       slices.Clone(c.Available),
		DefaultLocale: c.DefaultLocale,
	}
	pc.Params, pc.Query = splitQuery(c.Query, c.Pathname)
	return pc
}

// NormalizeServer builds the page context of a server-props pass.
// Params are taken as given and removed from the query. The pathname is the
// absolute URL of the request.
func NormalizeServer(c *ServerContext) PageContext {
	if c == nil {
		c = &ServerContext{}
	}
	params := dropEmpty(c.Params)
	query := url.Values{}
	for name, values := range dropEmpty(c.Query) {
		if _, ok := params[name]; !ok {
			query[name] = values
		}
	}
	return PageContext{
		Env:           EnvServer,
		Route:         c.Route,
		Pathname:      buildPathname(c),
		AsPath:        c.ResolvedURL,
		Query:         query,
		Params:        params,
		Locale:        c.Locale,
		Locales:       slices.Clone(c.Available),
		DefaultLocale: c.DefaultLocale,
	}
}

// NormalizeStatic builds the page context of a static-props pass.
func NormalizeStatic(c *StaticContext) StaticPageContext {
	if c == nil {
		c = &StaticContext{}
	}
	return StaticPageContext{
		Env:           EnvServer,
		Params:        dropEmpty(c.Params),
		Locale:        c.Locale,
		Locales:       slices.Clone(c.Available),
		DefaultLocale: c.DefaultLocale,
		Preview:       c.Preview,
		PreviewData:   c.PreviewData,
	}
}

// splitQuery separates path parameters from query parameters using the
// route pattern. A key is a parameter when the pattern has a "[key]"
// placeholder or a "[...key]" catch-all. Keys without a value are dropped.
func splitQuery(raw url.Values, route string) (params, query url.Values) {
	params, query = url.Values{}, url.Values{}
	for name, values := range raw {
		if isEmpty(values) {
			continue
		}
		if strings.Contains(route, "[..."+name+"]") || strings.Contains(route, "["+name+"]") {
			params[name] = slices.Clone(values)
			continue
		}
		query[name] = slices.Clone(values)
	}
	return params, query
}

func dropEmpty(raw url.Values) url.Values {
	out := url.Values{}
	for name, values := range raw {
		if !isEmpty(values) {
			out[name] = slices.Clone(values)
		}
	}
	return out
}

func isEmpty(values []string) bool {
	return len(values) == 0 || (len(values) == 1 && values[0] == "")
}

// buildPathname joins the referer scheme (https when unknown), the Host
// header and the resolved URL.
func buildPathname(c *ServerContext) string {
	host, proto := "", "https"
	if c.Request != nil {
		host = c.Request.Host
		if scheme, _, ok := strings.Cut(c.Request.Referer(), "://"); ok && scheme != "" {
			proto = scheme
		}
	}
	return proto + "://" + host + c.ResolvedURL
}
