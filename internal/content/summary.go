package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultSummaryBudget is the character budget list views ask for.
	DefaultSummaryBudget = 200

	// Ellipsis marks a summary that was cut at the budget.
	Ellipsis = "..."
)

// tagStripper removes every HTML tag and keeps the text between them.
// bluemonday policies are safe for concurrent use once built.
var tagStripper = bluemonday.StrictPolicy()

// Summary derives the plain-text preview of a document: the content of
// text, header and subheader sections joined by single spaces, tags
// stripped, cut to budget characters. Ellipsis is appended only when text
// was actually dropped.
func Summary(doc Document, budget int) string {
	if budget <= 0 {
		return ""
	}

	parts := make([]string, 0, len(doc))
	for _, s := range doc {
		switch s.Kind {
		case KindText, KindHeader, KindSubheader:
			parts = append(parts, s.Text())
		}
	}

	text := StripTags(strings.Join(parts, " "))
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + Ellipsis
}

// SummaryFromStored decodes stored content and summarizes it. Legacy text
// yields "" so list views show no preview rather than raw text.
func SummaryFromStored(stored string, budget int) string {
	decoded := Decode(stored)
	if !decoded.IsStructured() {
		return ""
	}
	return Summary(decoded.Document, budget)
}

// StripTags removes embedded HTML tags from s and returns the remaining
// text with entities decoded.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(tagStripper.Sanitize(s))
}
