package catalog

import (
	"gopkg.in/yaml.v3"

	"inkpost/internal/content"
)

// SectionType describes one entry of the editor's "add section" palette.
type SectionType struct {
	// Kind is set from the YAML key during unmarshaling
	Kind content.Kind `yaml:"-" json:"type"`

	Label       string         `yaml:"label" json:"label"`
	Description string         `yaml:"description" json:"description"`
	Layout      content.Layout `yaml:"layout" json:"layout"`

	// Markup reports whether inline markup is expanded for this kind
	Markup bool `yaml:"markup" json:"markup"`
	// Styled reports whether color/size/list controls apply
	Styled       bool   `yaml:"styled" json:"styled"`
	AcceptsImage bool   `yaml:"accepts_image" json:"acceptsImage"`
	LanguageHint string `yaml:"language_hint" json:"languageHint,omitempty"`
}

// ListStyleOption is a list marker choice with its display label.
type ListStyleOption struct {
	Value content.ListStyle `yaml:"value" json:"value"`
	Label string            `yaml:"label" json:"label"`
}

// MarkupHint documents one inline markup rule for the editor help line.
type MarkupHint struct {
	Syntax string `yaml:"syntax" json:"syntax"`
	Effect string `yaml:"effect" json:"effect"`
}

// Palette is everything the section editor offers.
type Palette struct {
	Sections         []SectionType     `yaml:"-" json:"sections"` // ordered, populated by custom unmarshaler
	FontSizes        []string          `yaml:"font_sizes" json:"fontSizes"`
	DefaultFontSize  string            `yaml:"default_font_size" json:"defaultFontSize"`
	DefaultTextColor string            `yaml:"default_text_color" json:"defaultTextColor"`
	ListStyles       []ListStyleOption `yaml:"list_styles" json:"listStyles"`
	MarkupHelp       []MarkupHint      `yaml:"markup_help" json:"markupHelp"`
}

// UnmarshalYAML keeps the section order of the YAML file, which a plain
// map decode would lose.
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	type plain Palette
	var base plain
	if err := node.Decode(&base); err != nil {
		return err
	}

	var sectionsOnly struct {
		Sections map[string]SectionType `yaml:"sections"`
	}
	if err := node.Decode(&sectionsOnly); err != nil {
		return err
	}

	*p = Palette(base)
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "sections" {
			continue
		}
		sectionsNode := node.Content[i+1]
		for j := 0; j < len(sectionsNode.Content); j += 2 {
			key := sectionsNode.Content[j].Value
			if st, ok := sectionsOnly.Sections[key]; ok {
				st.Kind = content.Kind(key)
				p.Sections = append(p.Sections, st)
			}
		}
		break
	}
	return nil
}
