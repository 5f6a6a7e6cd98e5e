package internal

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// HydrationScriptID is the id of the script element carrying the page data.
const HydrationScriptID = "__HYDRATE_DATA__"

// PropsHeader marks a client navigation asking for props only.
const PropsHeader = "X-Hydrate-Props"

// HydrationData is embedded in every document so the client can rebuild
// the scope and keep navigating without full reloads.
type HydrationData struct {
	Page          string     `json:"page"`
	Query         url.Values `json:"query"`
	Props         PageProps  `json:"props"`
	Locale        string     `json:"locale,omitempty"`
	Locales       []string   `json:"locales,omitempty"`
	DefaultLocale string     `json:"defaultLocale,omitempty"`
}

// PageProps is the props envelope, also sent alone to client navigations.
type PageProps struct {
	PageProps Props `json:"pageProps"`
}

// DocumentData is what a DocumentFunc receives.
type DocumentData struct {
	Body templ.Component
	Data HydrationData
	Lang string
}

// DocumentFunc wraps a rendered page into a full HTML document.
// Implementations must render Data with templ.JSONScript(HydrationScriptID, ...)
// for the client to hydrate.
type DocumentFunc func(d DocumentData) templ.Component

// DefaultDocument renders a minimal HTML5 document.
func DefaultDocument(d DocumentData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := d.Lang
		if lang == "" {
			lang = "en"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+templ.EscapeString(lang)+`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"></head><body><div id="__hydrate">`); err != nil {
			return err
		}
		if err := d.Body.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if err := templ.JSONScript(HydrationScriptID, d.Data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
