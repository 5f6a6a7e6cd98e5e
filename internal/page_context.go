package internal

import (
	"net/http"
	"net/url"
)

// PageContext is the payload page events receive, whatever triggered the
// render: a client navigation, an initial-props pass or a server request.
type PageContext struct {
	Env           Env        `json:"env"`
	Route         string     `json:"route,omitempty"`
	Pathname      string     `json:"pathname"`
	AsPath        string     `json:"asPath,omitempty"`
	Query         url.Values `json:"query"`
	Params        url.Values `json:"params"`
	Locale        string     `json:"locale,omitempty"`
	Locales       []string   `json:"locales,omitempty"`
	DefaultLocale string     `json:"defaultLocale,omitempty"`
}

func (pc PageContext) IsServer() bool { return pc.Env.IsServer() }
func (pc PageContext) IsClient() bool { return pc.Env.IsClient() }

// Param returns the first value of a path parameter.
func (pc PageContext) Param(name string) string {
	return pc.Params.Get(name)
}

// StaticPageContext is the payload page events receive while a static page
// is generated. There is no request, so there is no query or pathname.
type StaticPageContext struct {
	Env           Env        `json:"env"`
	Params        url.Values `json:"params"`
	Locale        string     `json:"locale,omitempty"`
	Locales       []string   `json:"locales,omitempty"`
	DefaultLocale string     `json:"defaultLocale,omitempty"`
	Preview       bool       `json:"preview,omitempty"`
	PreviewData   any        `json:"previewData,omitempty"`
}

// Param returns the first value of a path parameter.
func (sc StaticPageContext) Param(name string) string {
	return sc.Params.Get(name)
}

// Locales carries the locale negotiation result shared by every native context.
type Locales struct {
	Locale        string
	Available     []string
	DefaultLocale string
}

// Navigation is the router state after a client-side route change.
// Query holds path parameters and query parameters together.
type Navigation struct {
	Locales
	Route    string
	Pathname string
	AsPath   string
	Query    url.Values
}

// InitialContext is what an initial-props pass gets. Request and Response
// are nil when the pass runs on the client.
type InitialContext struct {
	Locales
	Request  *http.Request
	Response http.ResponseWriter
	Pathname string
	AsPath   string
	Query    url.Values
}

// ServerContext is what a server-props pass gets for one request.
// Query holds path parameters and query parameters together.
type ServerContext struct {
	Locales
	Request     *http.Request
	Response    http.ResponseWriter
	Route       string
	ResolvedURL string
	Params      url.Values
	Query       url.Values
}

// StaticContext is what a static-props pass gets when a page is generated.
type StaticContext struct {
	Locales
	Params      url.Values
	Preview     bool
	PreviewData any
}
