package internal

import (
	"net/http"
	"slices"

	"golang.org/x/text/language"
)

// Default locale sources: ?locale=, then the "locale" cookie.
// Accept-Language is always consulted last.
var defaultLocaleSources = []ExtractorSource{
	FromQuery("locale"),
	FromCookie("locale"),
}

// localeResolver negotiates the page locale against the supported set.
type localeResolver struct {
	matcher   language.Matcher
	extractor Extractor
	def       string
	supported []string
}

// newLocaleResolver builds a resolver. With no supported locales every
// request resolves to empty locale info.
func newLocaleResolver(def string, supported []string, sources []ExtractorSource) *localeResolver {
	lr := &localeResolver{def: def}
	if len(supported) == 0 {
		return lr
	}
	if lr.def == "" {
		lr.def = supported[0]
	}

	// the matcher falls back to the first tag
	lr.supported = []string{lr.def}
	for _, s := range supported {
		if s != lr.def {
			lr.supported = append(lr.supported, s)
		}
	}

	tags := make([]language.Tag, 0, len(lr.supported))
	for _, s := range lr.supported {
		tags = append(tags, language.Make(s))
	}
	lr.matcher = language.NewMatcher(tags)

	if sources == nil {
		sources = defaultLocaleSources
	}
	lr.extractor = NewExtractor(sources...)
	return lr
}

// Resolve returns the locale info of the request.
func (lr *localeResolver) Resolve(r *http.Request) Locales {
	if lr.matcher == nil {
		return Locales{}
	}

	out := Locales{
		Available:     slices.Clone(lr.supported),
		DefaultLocale: lr.def,
		Locale:        lr.def,
	}

	var prefs []language.Tag
	if v, ok := lr.extractor.Extract(r); ok {
		if tag, err := language.Parse(v); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if accept, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		prefs = append(prefs, accept...)
	}
	if len(prefs) == 0 {
		return out
	}

	_, idx, conf := lr.matcher.Match(prefs...)
	if conf != language.No {
		out.Locale = lr.supported[idx]
	}
	return out
}

// All returns the locale info for each supported locale, or a single empty
// one when locales are not configured.
func (lr *localeResolver) All() []Locales {
	if lr.matcher == nil {
		return []Locales{{}}
	}
	out := make([]Locales, 0, len(lr.supported))
	for _, l := range lr.supported {
		out = append(out, Locales{
			Locale:        l,
			Available:     slices.Clone(lr.supported),
			DefaultLocale: lr.def,
		})
	}
	return out
}
