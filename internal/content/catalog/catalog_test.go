package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/content"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	p := c.Palette()

	var kinds []content.Kind
	for _, st := range p.Sections {
		kinds = append(kinds, st.Kind)
	}
	assert.Equal(t, content.Kinds, kinds, "palette order follows the YAML file")

	assert.Equal(t, []string{"12px", "14px", "16px", "18px", "20px", "24px"}, p.FontSizes)
	assert.Equal(t, "16px", p.DefaultFontSize)
	require.Len(t, p.ListStyles, 6)
	assert.Equal(t, content.ListDisc, p.ListStyles[0].Value)
	assert.Len(t, p.MarkupHelp, 7)
}

func TestCatalog_Section(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	st, ok := c.Section(content.KindTwoColumn)
	require.True(t, ok)
	assert.Equal(t, content.LayoutDouble, st.Layout)
	assert.True(t, st.Styled)

	code, ok := c.Section(content.KindCode)
	require.True(t, ok)
	assert.False(t, code.Markup)

	_, ok = c.Section("video")
	assert.False(t, ok)
}

func TestCatalog_NewSection(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	sec, err := c.NewSection(content.KindTwoColumn)
	require.NoError(t, err)
	assert.Equal(t, content.LayoutDouble, sec.Layout)
	assert.NotEmpty(t, sec.ID)

	_, err = c.NewSection("video")
	assert.Error(t, err)
}

func TestCatalog_PaletteIsACopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	p := c.Palette()
	p.FontSizes[0] = "99px"
	p.Sections[0].Label = "changed"

	fresh := c.Palette()
	assert.Equal(t, "12px", fresh.FontSizes[0])
	assert.Equal(t, "Header", fresh.Sections[0].Label)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown section", "sections:\n  video: {label: Video}\n"},
		{"missing sections", "sections:\n  header: {label: Header}\n"},
		{"bad yaml", "sections: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
