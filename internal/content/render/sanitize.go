package render

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes dangerous elements and attributes from HTML that
// did not come out of the section renderer, such as legacy free-text posts.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer with the user-generated-content
// policy: common formatting survives, scripts and event handlers do not.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

// Sanitize returns html with unsafe markup removed.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
