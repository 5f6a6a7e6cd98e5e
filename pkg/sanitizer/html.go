// Package sanitizer cleans HTML produced from untrusted or hand-written
// content before it is rendered into pages.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	safePolicy    *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)

		// rendered markdown: headings, tables and fenced code languages
		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
		contentPolicy.RequireNoFollowOnFullyQualifiedLinks(true)
	})
}

// StripHTML removes every tag and returns plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML keeps basic formatting (p, a, strong, em, lists, code).
// Scripts, event handlers and javascript: URLs are removed.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeContent is for HTML rendered from markdown documents. It keeps
// headings, images, tables and code language classes.
func SanitizeContent(b []byte) []byte {
	initPolicies()
	return contentPolicy.SanitizeBytes(b)
}
