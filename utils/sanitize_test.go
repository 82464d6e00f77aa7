package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "script stripped",
			input:    `<p>hello</p><script>alert(1)</script>`,
			contains: "<p>hello</p>",
			excludes: "<script>",
		},
		{
			name:     "event handlers stripped",
			input:    `<a href="https://example.com" onclick="steal()">link</a>`,
			contains: "link",
			excludes: "onclick",
		},
		{
			name:     "formatting kept",
			input:    `<p class="lead"><strong>bold</strong> and <em>italic</em></p>`,
			contains: "<strong>bold</strong>",
			excludes: "",
		},
		{
			name:     "images kept",
			input:    `<img src="https://cdn.example.com/a.png" alt="photo">`,
			contains: "img",
			excludes: "",
		},
		{
			name:     "iframe stripped",
			input:    `before<iframe src="https://evil.example.com"></iframe>after`,
			contains: "beforeafter",
			excludes: "iframe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SanitizeHTML(tt.input)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
			if tt.excludes != "" {
				assert.NotContains(t, out, tt.excludes)
			}
		})
	}
}

func TestSanitizeHTML_LinksGetNoFollow(t *testing.T) {
	out := SanitizeHTML(`<a href="https://example.com">link</a>`)
	assert.Contains(t, out, `rel="nofollow"`)
}
