package utils

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

// SanitizeHTML strips dangerous markup from user-supplied article content
// while keeping the formatting, link, and image elements editors rely on.
func SanitizeHTML(html string) string {
	sanitizerOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("p", "span", "div", "figure", "figcaption")
		p.AllowAttrs("target").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		sanitizer = p
	})
	return sanitizer.Sanitize(html)
}
