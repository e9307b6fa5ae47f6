package content

import (
	"regexp"
	"strings"
)

// ListStyle is the list marker style of a bulleted block, stored in the
// editor's class-name form ("list-disc").
type ListStyle string

const (
	ListDisc       ListStyle = "list-disc"
	ListDecimal    ListStyle = "list-decimal"
	ListLowerAlpha ListStyle = "list-lower-alpha"
	ListUpperAlpha ListStyle = "list-upper-alpha"
	ListLowerRoman ListStyle = "list-lower-roman"
	ListUpperRoman ListStyle = "list-upper-roman"
)

// ListStyles lists the six marker styles in editor palette order.
var ListStyles = []ListStyle{ListDisc, ListDecimal, ListLowerAlpha, ListUpperAlpha, ListLowerRoman, ListUpperRoman}

// ParseListStyle accepts both the stored form ("list-decimal") and the bare
// CSS keyword ("decimal").
func ParseListStyle(v string) (ListStyle, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "list-") {
		v = "list-" + v
	}
	for _, ls := range ListStyles {
		if string(ls) == v {
			return ls, true
		}
	}
	return "", false
}

// CSS returns the list-style-type keyword. Absent or unknown styles fall
// back to disc.
func (ls ListStyle) CSS() string {
	parsed, ok := ParseListStyle(string(ls))
	if !ok {
		return "disc"
	}
	return strings.TrimPrefix(string(parsed), "list-")
}

// Ordered reports whether the marker style numbers its items.
func (ls ListStyle) Ordered() bool {
	return ls.CSS() != "disc"
}

// Style is the resolved presentation of one column. Zero values mean
// "inherit" for strings and "off" for flags.
type Style struct {
	TextColor     string
	FontSize      string
	BulletList    bool
	ListStyle     ListStyle
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// Color returns the CSS color, or "inherit" when unset or unsafe.
func (s Style) Color() string {
	if s.TextColor == "" || !SafeColor(s.TextColor) {
		return "inherit"
	}
	return s.TextColor
}

// Size returns the CSS font size, or "inherit" when unset or unsafe.
func (s Style) Size() string {
	if s.FontSize == "" || !SafeFontSize(s.FontSize) {
		return "inherit"
	}
	return s.FontSize
}

// Weight returns the CSS font-weight value.
func (s Style) Weight() string {
	if s.Bold {
		return "bold"
	}
	return "normal"
}

// FontStyle returns the CSS font-style value.
func (s Style) FontStyle() string {
	if s.Italic {
		return "italic"
	}
	return "normal"
}

// Decoration combines underline and strikethrough into one
// text-decoration value.
func (s Style) Decoration() string {
	var parts []string
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Strikethrough {
		parts = append(parts, "line-through")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

var (
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColorPattern = regexp.MustCompile(`^[a-zA-Z]{3,24}$`)
	rgbColorPattern   = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)$`)
	fontSizePattern   = regexp.MustCompile(`^\d{1,3}(?:\.\d{1,3})?(?:px|em|rem|pt|%)$`)
	fontSizeKeywords  = map[string]bool{
		"xx-small": true, "x-small": true, "small": true, "medium": true,
		"large": true, "x-large": true, "xx-large": true, "smaller": true, "larger": true,
	}
)

// SafeColor reports whether v can be placed in a style attribute as a color.
func SafeColor(v string) bool {
	return hexColorPattern.MatchString(v) || namedColorPattern.MatchString(v) || rgbColorPattern.MatchString(v)
}

// SafeFontSize reports whether v can be placed in a style attribute as a
// font size.
func SafeFontSize(v string) bool {
	return fontSizePattern.MatchString(v) || fontSizeKeywords[v]
}
