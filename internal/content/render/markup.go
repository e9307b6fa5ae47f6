package render

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Rule is one inline markup replacement. A rule either expands its match
// through Template (regexp expansion syntax) or through Func.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
	Func     func(groups []string) string
}

// Apply runs the rule once over s, replacing every non-overlapping match.
func (r Rule) Apply(s string) string {
	if r.Func == nil {
		return r.Pattern.ReplaceAllString(s, r.Template)
	}
	return r.Pattern.ReplaceAllStringFunc(s, func(match string) string {
		return r.Func(r.Pattern.FindStringSubmatch(match))
	})
}

// InlineRules is the fixed, ordered inline grammar. Order matters: bold
// must consume "**" before italic sees single asterisks.
var InlineRules = []Rule{
	{Name: "bold", Pattern: regexp.MustCompile(`\*\*(.*?)\*\*`), Template: `<strong>${1}</strong>`},
	{Name: "italic", Pattern: regexp.MustCompile(`\*(.*?)\*`), Template: `<em>${1}</em>`},
	{Name: "underline", Pattern: regexp.MustCompile(`__(.*?)__`), Template: `<u>${1}</u>`},
	{Name: "strikethrough", Pattern: regexp.MustCompile(`~~(.*?)~~`), Template: `<del>${1}</del>`},
	{Name: "large", Pattern: regexp.MustCompile(`\{\{large:(.*?)\}\}`), Template: `<span style="font-size: 1.25em">${1}</span>`},
	{Name: "small", Pattern: regexp.MustCompile(`\{\{small:(.*?)\}\}`), Template: `<span style="font-size: 0.875em">${1}</span>`},
	{Name: "link", Pattern: regexp.MustCompile(`\[(.*?)\]\((.*?)\)`), Func: expandLink},
}

// Expand HTML-escapes text and then applies InlineRules in order. Each
// rule is a single pass; spans produced by one rule are not re-scanned
// except by the rules that follow it.
func Expand(text string) string {
	out := html.EscapeString(text)
	for _, rule := range InlineRules {
		out = rule.Apply(out)
	}
	return out
}

// expandLink emits an anchor for http, https, mailto and relative targets.
// Anything else (javascript:, data:) renders as its label only.
func expandLink(groups []string) string {
	label, target := groups[1], groups[2]
	if !safeHref(html.UnescapeString(target)) {
		return label
	}
	return `<a href="` + target + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

func safeHref(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	}
	return false
}
