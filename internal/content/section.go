package content

import (
	"reflect"

	"github.com/google/uuid"
)

// Kind is the closed set of section types a blog body can hold.
type Kind string

const (
	KindHeader    Kind = "header"
	KindSubheader Kind = "subheader"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindTwoColumn Kind = "two-column"
	KindCode      Kind = "code"
)

// Kinds lists every section kind in editor palette order.
var Kinds = []Kind{KindHeader, KindSubheader, KindText, KindImage, KindTwoColumn, KindCode}

// Valid reports whether k is one of the known section kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHeader, KindSubheader, KindText, KindImage, KindTwoColumn, KindCode:
		return true
	}
	return false
}

// Layout is advisory; only two-column sections use LayoutDouble meaningfully.
type Layout string

const (
	LayoutSingle Layout = "single"
	LayoutDouble Layout = "double"
)

// Section is one typed, styled block of a blog body.
//
// Optional fields are pointers so that an absent field and an empty one
// survive an encode/decode round trip as different values. Two-column
// sections use only the Left*/Right* fields; the top-level content and
// style fields belong to every other kind.
type Section struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"type"`
	Layout Layout `json:"layout"`

	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Language *string `json:"language,omitempty"`

	TextColor       *string    `json:"textColor,omitempty"`
	FontSize        *string    `json:"fontSize,omitempty"`
	IsBulletList    *bool      `json:"isBulletList,omitempty"`
	ListStyle       *ListStyle `json:"listStyle,omitempty"`
	IsBold          *bool      `json:"isBold,omitempty"`
	IsItalic        *bool      `json:"isItalic,omitempty"`
	IsUnderline     *bool      `json:"isUnderline,omitempty"`
	IsStrikethrough *bool      `json:"isStrikethrough,omitempty"`

	LeftContent         *string    `json:"leftContent,omitempty"`
	LeftImageURL        *string    `json:"leftImageUrl,omitempty"`
	LeftTextColor       *string    `json:"leftTextColor,omitempty"`
	LeftFontSize        *string    `json:"leftFontSize,omitempty"`
	LeftIsBulletList    *bool      `json:"leftIsBulletList,omitempty"`
	LeftListStyle       *ListStyle `json:"leftListStyle,omitempty"`
	LeftIsBold          *bool      `json:"leftIsBold,omitempty"`
	LeftIsItalic        *bool      `json:"leftIsItalic,omitempty"`
	LeftIsUnderline     *bool      `json:"leftIsUnderline,omitempty"`
	LeftIsStrikethrough *bool      `json:"leftIsStrikethrough,omitempty"`

	RightContent         *string    `json:"rightContent,omitempty"`
	RightImageURL        *string    `json:"rightImageUrl,omitempty"`
	RightTextColor       *string    `json:"rightTextColor,omitempty"`
	RightFontSize        *string    `json:"rightFontSize,omitempty"`
	RightIsBulletList    *bool      `json:"rightIsBulletList,omitempty"`
	RightListStyle       *ListStyle `json:"rightListStyle,omitempty"`
	RightIsBold          *bool      `json:"rightIsBold,omitempty"`
	RightIsItalic        *bool      `json:"rightIsItalic,omitempty"`
	RightIsUnderline     *bool      `json:"rightIsUnderline,omitempty"`
	RightIsStrikethrough *bool      `json:"rightIsStrikethrough,omitempty"`
}

// NewSection creates an empty section of the given kind with a fresh id.
// Every kind except two-column starts with an empty (present) content field.
func NewSection(kind Kind, layout Layout) Section {
	if layout == "" {
		layout = LayoutSingle
		if kind == KindTwoColumn {
			layout = LayoutDouble
		}
	}
	s := Section{
		ID:     uuid.NewString(),
		Kind:   kind,
		Layout: layout,
	}
	if kind != KindTwoColumn {
		s.Content = String("")
	}
	return s
}

// Clone returns a deep copy; no pointer field is shared with s.
func (s Section) Clone() Section {
	c := s
	v := reflect.ValueOf(&c).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Pointer || f.IsNil() {
			continue
		}
		p := reflect.New(f.Elem().Type())
		p.Elem().Set(f.Elem())
		f.Set(p)
	}
	return c
}

// Text returns the primary content, or "" when absent.
func (s Section) Text() string {
	return deref(s.Content)
}

// Side selects which sub-document of a section a Column view reads.
type Side int

const (
	SidePrimary Side = iota
	SideLeft
	SideRight
)

func (sd Side) String() string {
	switch sd {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "primary"
	}
}

// Column is a resolved, pointer-free view of one sub-document: the whole
// section for single kinds, or one side of a two-column section.
type Column struct {
	Content  string
	ImageURL string
	Style    Style
}

// Column resolves the requested side. Sides never inherit from each other.
func (s Section) Column(side Side) Column {
	switch side {
	case SideLeft:
		return Column{
			Content:  deref(s.LeftContent),
			ImageURL: deref(s.LeftImageURL),
			Style: Style{
				TextColor:     deref(s.LeftTextColor),
				FontSize:      deref(s.LeftFontSize),
				BulletList:    derefBool(s.LeftIsBulletList),
				ListStyle:     derefListStyle(s.LeftListStyle),
				Bold:          derefBool(s.LeftIsBold),
				Italic:        derefBool(s.LeftIsItalic),
				Underline:     derefBool(s.LeftIsUnderline),
				Strikethrough: derefBool(s.LeftIsStrikethrough),
			},
		}
	case SideRight:
		return Column{
			Content:  deref(s.RightContent),
			ImageURL: deref(s.RightImageURL),
			Style: Style{
				TextColor:     deref(s.RightTextColor),
				FontSize:      deref(s.RightFontSize),
				BulletList:    derefBool(s.RightIsBulletList),
				ListStyle:     derefListStyle(s.RightListStyle),
				Bold:          derefBool(s.RightIsBold),
				Italic:        derefBool(s.RightIsItalic),
				Underline:     derefBool(s.RightIsUnderline),
				Strikethrough: derefBool(s.RightIsStrikethrough),
			},
		}
	default:
		return Column{
			Content:  deref(s.Content),
			ImageURL: deref(s.ImageURL),
			Style: Style{
				TextColor:     deref(s.TextColor),
				FontSize:      deref(s.FontSize),
				BulletList:    derefBool(s.IsBulletList),
				ListStyle:     derefListStyle(s.ListStyle),
				Bold:          derefBool(s.IsBold),
				Italic:        derefBool(s.IsItalic),
				Underline:     derefBool(s.IsUnderline),
				Strikethrough: derefBool(s.IsStrikethrough),
			},
		}
	}
}

// String returns a pointer to v, for building optional fields.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building optional fields.
func Bool(v bool) *bool { return &v }

// ListStylePtr returns a pointer to v, for building optional fields.
func ListStylePtr(v ListStyle) *ListStyle { return &v }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefBool(p *bool) bool {
	return p != nil && *p
}

func derefListStyle(p *ListStyle) ListStyle {
	if p == nil {
		return ""
	}
	return *p
}
