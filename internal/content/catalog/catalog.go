// Package catalog serves the section editor's palette: section kinds,
// font sizes, list marker styles and the inline markup cheat sheet.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"inkpost/internal/content"
)

//go:embed config/palette.yaml
var configFiles embed.FS

const paletteFile = "config/palette.yaml"

// Catalog is an immutable, loaded palette. Safe for concurrent use.
type Catalog struct {
	palette Palette
	byKind  map[content.Kind]SectionType
}

// Load parses the embedded palette.
func Load() (*Catalog, error) {
	data, err := configFiles.ReadFile(paletteFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", paletteFile, err)
	}
	return Parse(data)
}

// Parse builds a catalog from palette YAML and checks it against the
// content model: every section kind must be offered exactly once and every
// list style must be recognised.
func Parse(data []byte) (*Catalog, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal palette: %w", err)
	}

	c := &Catalog{palette: p, byKind: make(map[content.Kind]SectionType, len(p.Sections))}
	for _, st := range p.Sections {
		if !st.Kind.Valid() {
			return nil, fmt.Errorf("palette offers unknown section type %q", st.Kind)
		}
		c.byKind[st.Kind] = st
	}
	for _, k := range content.Kinds {
		if _, ok := c.byKind[k]; !ok {
			return nil, fmt.Errorf("palette is missing section type %q", k)
		}
	}
	for _, ls := range p.ListStyles {
		if _, ok := content.ParseListStyle(string(ls.Value)); !ok {
			return nil, fmt.Errorf("palette offers unknown list style %q", ls.Value)
		}
	}
	for _, size := range p.FontSizes {
		if !content.SafeFontSize(size) {
			return nil, fmt.Errorf("palette offers invalid font size %q", size)
		}
	}
	return c, nil
}

// Palette returns a copy of the full palette.
func (c *Catalog) Palette() Palette {
	p := c.palette
	p.Sections = append([]SectionType(nil), c.palette.Sections...)
	p.FontSizes = append([]string(nil), c.palette.FontSizes...)
	p.ListStyles = append([]ListStyleOption(nil), c.palette.ListStyles...)
	p.MarkupHelp = append([]MarkupHint(nil), c.palette.MarkupHelp...)
	return p
}

// Section returns the palette entry for kind.
func (c *Catalog) Section(kind content.Kind) (SectionType, bool) {
	st, ok := c.byKind[kind]
	return st, ok
}

// NewSection creates an empty section of kind using the palette's default
// layout.
func (c *Catalog) NewSection(kind content.Kind) (content.Section, error) {
	st, ok := c.byKind[kind]
	if !ok {
		return content.Section{}, fmt.Errorf("unknown section type %q", kind)
	}
	return content.NewSection(kind, st.Layout), nil
}
