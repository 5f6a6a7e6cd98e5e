package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/internal"
)

func TestValue(t *testing.T) {
	t.Parallel()

	q := url.Values{"page": {"3"}, "ratio": {"0.5"}, "draft": {"true"}, "tag": {"go", "web"}, "bad": {"x"}}

	require.Equal(t, 3, internal.Value[int](q, "page"))
	require.Equal(t, int64(3), internal.Value[int64](q, "page"))
	require.InDelta(t, 0.5, internal.Value[float64](q, "ratio"), 1e-9)
	require.True(t, internal.Value[bool](q, "draft"))
	require.Equal(t, "go", internal.Value[string](q, "tag"))
	require.Zero(t, internal.Value[int](q, "bad"))
	require.Zero(t, internal.Value[int](q, "missing"))

	require.Equal(t, 10, internal.ValueDefault(q, "missing", 10))
	require.Equal(t, 10, internal.ValueDefault(q, "bad", 10))
	require.Equal(t, 3, internal.ValueDefault(q, "page", 10))
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?locale=de", nil)
	req.Header.Set("X-Locale", "fr")
	req.AddCookie(&http.Cookie{Name: "locale", Value: "es"})

	v, ok := internal.NewExtractor(internal.FromHeader("X-Missing"), internal.FromCookie("locale"), internal.FromQuery("locale")).Extract(req)
	require.True(t, ok)
	require.Equal(t, "es", v)

	v, ok = internal.NewExtractor(internal.FromHeader("X-Locale")).Extract(req)
	require.True(t, ok)
	require.Equal(t, "fr", v)

	_, ok = internal.NewExtractor(internal.FromQuery("nope"), internal.FromCookie("nope")).Extract(req)
	require.False(t, ok)
}
