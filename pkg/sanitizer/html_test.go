package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/hydrate/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", sanitizer.StripHTML(`<p>Hello <strong>world</strong></p>`))
	assert.Equal(t, "Hello", sanitizer.StripHTML(`<p>Hello</p><script>alert('xss')</script>`))
	assert.Equal(t, "click", sanitizer.StripHTML(`<a href="javascript:alert('xss')">click</a>`))
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p><strong>ok</strong></p>", sanitizer.SanitizeHTML(`<p><strong>ok</strong></p>`))
	assert.Equal(t, "<p>x</p>", sanitizer.SanitizeHTML(`<p onclick="evil()">x</p>`))
	assert.Equal(t, "", sanitizer.SanitizeHTML(`<script>alert(1)</script>`))
	assert.Equal(t, "<em>fast</em> pages", sanitizer.SanitizeHTML(`<em>fast</em> pages<script>alert(1)</script>`))
}

func TestSanitizeContent(t *testing.T) {
	t.Parallel()

	out := string(sanitizer.SanitizeContent([]byte(`<h2 id="x">Title</h2><pre><code class="language-go">x := 1</code></pre><script>alert(1)</script>`)))
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, `<code class="language-go">`)
	assert.NotContains(t, out, "script")
}
