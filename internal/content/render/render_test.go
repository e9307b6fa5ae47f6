package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/content"
)

const testBase = "http://localhost:4000"

func TestRenderSection_ByKind(t *testing.T) {
	r := New(testBase)

	tests := []struct {
		name    string
		section content.Section
		want    string
	}{
		{
			name:    "header is verbatim",
			section: content.Section{ID: "1", Kind: content.KindHeader, Content: content.String("**Hi** <there>")},
			want:    `<h1 class="section-header">**Hi** &lt;there&gt;</h1>`,
		},
		{
			name:    "subheader is verbatim",
			section: content.Section{ID: "1", Kind: content.KindSubheader, Content: content.String("*sub*")},
			want:    `<h2 class="section-subheader">*sub*</h2>`,
		},
		{
			name:    "text paragraph",
			section: content.Section{ID: "1", Kind: content.KindText, Content: content.String("**a**"), TextColor: content.String("red"), IsItalic: content.Bool(true)},
			want:    `<p class="section-text" style="white-space: pre-wrap; color: red; font-size: inherit; font-weight: normal; font-style: italic; text-decoration: none"><strong>a</strong></p>`,
		},
		{
			name:    "image with url",
			section: content.Section{ID: "1", Kind: content.KindImage, ImageURL: content.String("/uploads/a.png")},
			want:    `<img class="section-image" src="http://localhost:4000/uploads/a.png" alt="Blog image">`,
		},
		{
			name:    "image without url",
			section: content.Section{ID: "1", Kind: content.KindImage},
			want:    ``,
		},
		{
			name:    "code is verbatim",
			section: content.Section{ID: "1", Kind: content.KindCode, Content: content.String("a **b** <c>"), Language: content.String("Go")},
			want:    `<pre class="section-code" data-language="go"><code class="language-go">a **b** &lt;c&gt;</code></pre>`,
		},
		{
			name:    "unknown kind renders empty",
			section: content.Section{ID: "1", Kind: "video", Content: content.String("x")},
			want:    ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RenderSection(tt.section)
			assert.Equal(t, tt.want, string(got.HTML))
			assert.Equal(t, tt.section.ID, got.ID)
		})
	}
}

func TestRenderSection_BulletedText(t *testing.T) {
	r := New(testBase)
	sec := content.Section{
		ID: "1", Kind: content.KindText,
		Content:      content.String("a\n\nb\n"),
		IsBulletList: content.Bool(true),
		IsBold:       content.Bool(true),
	}

	got := string(r.RenderSection(sec).HTML)
	assert.Equal(t, 2, strings.Count(got, "<li"))
	assert.Contains(t, got, `<li style="color: inherit">a</li>`)
	assert.Contains(t, got, `<li style="color: inherit">b</li>`)
	assert.True(t, strings.HasPrefix(got, `<ul class="section-list" style="list-style-type: disc; color: inherit; font-size: inherit; font-weight: bold;`), got)
}

func TestRenderSection_OrderedList(t *testing.T) {
	r := New(testBase)
	sec := content.Section{
		ID: "1", Kind: content.KindText,
		Content:      content.String("*one*\ntwo"),
		IsBulletList: content.Bool(true),
		ListStyle:    content.ListStylePtr(content.ListLowerRoman),
	}

	got := string(r.RenderSection(sec).HTML)
	assert.True(t, strings.HasPrefix(got, `<ol class="section-list" style="list-style-type: lower-roman;`), got)
	assert.Contains(t, got, "<em>one</em>")
	assert.True(t, strings.HasSuffix(got, "</ol>"))
}

func TestRenderSection_BlankBulletsRenderEmptyList(t *testing.T) {
	r := New(testBase)
	sec := content.Section{ID: "1", Kind: content.KindText, Content: content.String("\n  \n"), IsBulletList: content.Bool(true)}

	got := string(r.RenderSection(sec).HTML)
	assert.Contains(t, got, "<ul")
	assert.NotContains(t, got, "<li")
}

func TestListItems(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ListItems("a\n\nb\n"))
	assert.Equal(t, []string{"x"}, ListItems("  x  "))
	assert.Empty(t, ListItems(""))
}

func TestRenderSection_TwoColumnIndependence(t *testing.T) {
	r := New(testBase)
	base := content.Section{
		ID: "c", Kind: content.KindTwoColumn, Layout: content.LayoutDouble,
		LeftContent:   content.String("left"),
		RightContent:  content.String("right **side**"),
		RightFontSize: content.String("20px"),
		RightImageURL: content.String("/uploads/r.png"),
	}

	before := r.RenderSection(base)

	changed := base.Clone()
	changed.LeftTextColor = content.String("#00ff00")
	after := r.RenderSection(changed)

	assert.NotEqual(t, before.Left, after.Left)
	assert.Equal(t, before.Right, after.Right)
	assert.Contains(t, string(after.Left), "color: #00ff00")
	assert.NotContains(t, string(after.Right), "#00ff00")
	assert.Contains(t, string(after.Right), `src="http://localhost:4000/uploads/r.png"`)
	assert.Contains(t, string(after.HTML), string(after.Left))
	assert.Contains(t, string(after.HTML), string(after.Right))
}

func TestRenderSection_TwoColumnOneSideEmpty(t *testing.T) {
	r := New(testBase)
	sec := content.Section{ID: "c", Kind: content.KindTwoColumn, RightContent: content.String("only right")}

	got := r.RenderSection(sec)
	assert.Contains(t, string(got.Right), "only right")
	assert.NotContains(t, string(got.Left), "<img")
}

func TestRender_ModesShareSectionOutput(t *testing.T) {
	r := New(testBase)
	doc := content.Document{
		{ID: "h", Kind: content.KindHeader, Content: content.String("Title")},
		{ID: "t", Kind: content.KindText, Content: content.String("*body*")},
		{ID: "k", Kind: content.KindCode, Content: content.String("x := 1")},
	}

	view := r.Render(doc, ModeRender)
	preview := r.Render(doc, ModePreview)

	require.Len(t, view.Sections, 3)
	assert.Equal(t, view.Sections, preview.Sections)
	assert.NotEqual(t, view.HTML, preview.HTML)
	assert.Contains(t, string(preview.HTML), "blog-preview")
	assert.Equal(t,
		strings.Replace(string(view.HTML), `class="blog-content"`, `class="blog-content blog-preview"`, 1),
		string(preview.HTML))
}

func TestRender_EmptyDocument(t *testing.T) {
	out := New(testBase).Render(content.Document{}, ModeRender)
	assert.Empty(t, out.Sections)
	assert.Equal(t, `<div class="blog-content"></div>`, string(out.HTML))
	assert.Equal(t, content.Structured, out.Variant)
}

func TestRenderStored_Legacy(t *testing.T) {
	r := New(testBase)
	out := r.RenderStored("line one\nline <b>two</b><script>x()</script>", ModeRender)

	assert.Equal(t, content.LegacyText, out.Variant)
	assert.Empty(t, out.Sections)
	assert.Equal(t, `<div class="blog-content legacy">line one<br>line <b>two</b></div>`, string(out.HTML))
}

func TestRenderStored_Structured(t *testing.T) {
	r := New(testBase)
	stored := content.Encode(content.Document{{ID: "a", Kind: content.KindText, Content: content.String("hi")}})

	out := r.RenderStored(stored, ModeRender)
	assert.Equal(t, content.Structured, out.Variant)
	require.Len(t, out.Sections, 1)
	assert.Contains(t, string(out.HTML), `data-section-id="a"`)
}

func TestResolveImage(t *testing.T) {
	r := New(testBase + "/")
	tests := map[string]string{
		"/uploads/a.png":          "http://localhost:4000/uploads/a.png",
		"uploads/a.png":           "http://localhost:4000/uploads/a.png",
		"https://cdn.example/a":   "https://cdn.example/a",
		"":                        "",
		"javascript:alert(1)":     "",
		"data:image/png;base64,x": "",
		"//evil.example/a.png":    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, r.ResolveImage(in), in)
	}
}

func TestCodeLanguage(t *testing.T) {
	assert.Equal(t, "plaintext", CodeLanguage(nil))
	assert.Equal(t, "plaintext", CodeLanguage(content.String("")))
	assert.Equal(t, "plaintext", CodeLanguage(content.String(`go"><script>`)))
	assert.Equal(t, "typescript", CodeLanguage(content.String(" TypeScript ")))
	assert.Equal(t, "c++", CodeLanguage(content.String("C++")))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModePreview, ParseMode("Preview"))
	assert.Equal(t, ModeRender, ParseMode(""))
	assert.Equal(t, ModeRender, ParseMode("render"))
}
