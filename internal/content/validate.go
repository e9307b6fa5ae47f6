package content

import (
	"errors"
	"fmt"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	cssColorRule = validation.By(func(value interface{}) error {
		p, _ := value.(*string)
		if p == nil || *p == "" || SafeColor(*p) {
			return nil
		}
		return errors.New("must be a hex, rgb() or named color")
	})

	cssFontSizeRule = validation.By(func(value interface{}) error {
		p, _ := value.(*string)
		if p == nil || *p == "" || SafeFontSize(*p) {
			return nil
		}
		return errors.New("must be a CSS length such as 16px or 1.2em")
	})

	// Encode would rewrite invalid bytes as U+FFFD and break the round trip.
	utf8Rule = validation.By(func(value interface{}) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		}
		if !utf8.ValidString(s) {
			return errors.New("must be valid UTF-8")
		}
		return nil
	})

	listStyleRule = validation.By(func(value interface{}) error {
		p, _ := value.(*ListStyle)
		if p == nil || *p == "" {
			return nil
		}
		if _, ok := ParseListStyle(string(*p)); !ok {
			return fmt.Errorf("unknown list style %q", string(*p))
		}
		return nil
	})
)

// Validate checks a section's shape. It is used on the save path only;
// Decode accepts anything structurally parseable.
func (s Section) Validate() error {
	twoColumn := s.Kind == KindTwoColumn
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required, utf8Rule),
		validation.Field(&s.Kind,
			validation.Required,
			validation.In(KindHeader, KindSubheader, KindText, KindImage, KindTwoColumn, KindCode),
		),
		validation.Field(&s.Layout, validation.In(LayoutSingle, LayoutDouble)),
		validation.Field(&s.Content, validation.When(twoColumn, validation.Empty), utf8Rule),
		validation.Field(&s.ImageURL, validation.When(twoColumn, validation.Empty), utf8Rule),
		validation.Field(&s.Language, utf8Rule),
		validation.Field(&s.LeftContent, utf8Rule),
		validation.Field(&s.LeftImageURL, utf8Rule),
		validation.Field(&s.RightContent, utf8Rule),
		validation.Field(&s.RightImageURL, utf8Rule),
		validation.Field(&s.TextColor, cssColorRule),
		validation.Field(&s.FontSize, cssFontSizeRule),
		validation.Field(&s.ListStyle, listStyleRule),
		validation.Field(&s.LeftTextColor, cssColorRule),
		validation.Field(&s.LeftFontSize, cssFontSizeRule),
		validation.Field(&s.LeftListStyle, listStyleRule),
		validation.Field(&s.RightTextColor, cssColorRule),
		validation.Field(&s.RightFontSize, cssFontSizeRule),
		validation.Field(&s.RightListStyle, listStyleRule),
	)
}

// Validate checks every section and that ids are unique within the
// document. An empty document is valid.
func Validate(doc Document) error {
	seen := make(map[string]int, len(doc))
	for i, s := range doc {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		if prev, dup := seen[s.ID]; dup {
			return fmt.Errorf("section %d: id %q already used by section %d", i, s.ID, prev)
		}
		seen[s.ID] = i
	}
	return nil
}
