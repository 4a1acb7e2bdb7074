package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes dangerous HTML elements and attributes before the
// content is converted. Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer with safe HTML policies.
// Uses a UGC (User Generated Content) policy that allows common formatting
// while stripping dangerous elements like scripts, event handlers, and
// javascript: URLs.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes dangerous HTML while preserving safe content: basic
// formatting, headings, lists, links, images, tables and code blocks
// survive; scripts, event handlers and javascript: URLs do not.
func (s *HTMLSanitizer) Sanitize(html string) (string, error) {
	return s.policy.Sanitize(html), nil
}
