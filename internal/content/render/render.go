// Package render turns decoded blog content into HTML. The same Renderer
// serves the public page view and the editor preview pane.
package render

import (
	"html"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"inkpost/internal/content"
)

// Mode selects the call site a document is rendered for. It only changes
// the class of the outer container; section markup is identical.
type Mode int

const (
	ModeRender Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "render"
}

// ParseMode maps "preview" to ModePreview and everything else to ModeRender.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "preview") {
		return ModePreview
	}
	return ModeRender
}

func (m Mode) containerClass() string {
	if m == ModePreview {
		return "blog-content blog-preview"
	}
	return "blog-content"
}

// RenderedSection is the output for one section. For two-column sections
// Left and Right hold the column blocks and HTML wraps them in an unstyled
// container; laying them side by side is the caller's job.
type RenderedSection struct {
	ID       string        `json:"id"`
	Kind     content.Kind  `json:"type"`
	HTML     template.HTML `json:"html"`
	Left     template.HTML `json:"left,omitempty"`
	Right    template.HTML `json:"right,omitempty"`
	Language string        `json:"language,omitempty"`
}

// Output is a rendered document.
type Output struct {
	Variant  content.Variant   `json:"variant"`
	Mode     string            `json:"mode"`
	Sections []RenderedSection `json:"sections"`
	HTML     template.HTML     `json:"html"`
}

// Renderer holds the settings rendering depends on. It has no mutable
// state and is safe for concurrent use.
type Renderer struct {
	uploadBase string
	legacy     *HTMLSanitizer
}

// New creates a Renderer. Relative image references are resolved against
// uploadBase (for example "http://localhost:4000").
func New(uploadBase string) *Renderer {
	return &Renderer{
		uploadBase: strings.TrimRight(uploadBase, "/"),
		legacy:     NewHTMLSanitizer(),
	}
}

// Render renders every section of doc in order.
func (r *Renderer) Render(doc content.Document, mode Mode) Output {
	out := Output{
		Variant:  content.Structured,
		Mode:     mode.String(),
		Sections: make([]RenderedSection, 0, len(doc)),
	}

	var b strings.Builder
	b.WriteString(`<div class="` + mode.containerClass() + `">`)
	for _, sec := range doc {
		rs := r.RenderSection(sec)
		out.Sections = append(out.Sections, rs)
		b.WriteString(`<div class="section section-` + string(rs.Kind) + `" data-section-id="` + html.EscapeString(rs.ID) + `">`)
		b.WriteString(string(rs.HTML))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	out.HTML = template.HTML(b.String())
	return out
}

// RenderDecoded renders either variant of decoded content. Legacy text is
// sanitized and its line breaks become <br>.
func (r *Renderer) RenderDecoded(d content.Decoded, mode Mode) Output {
	if d.IsStructured() {
		return r.Render(d.Document, mode)
	}
	return Output{
		Variant:  content.LegacyText,
		Mode:     mode.String(),
		Sections: []RenderedSection{},
		HTML:     template.HTML(`<div class="` + mode.containerClass() + ` legacy">` + r.RenderLegacy(d.Text) + `</div>`),
	}
}

// RenderStored decodes a stored content string and renders it.
func (r *Renderer) RenderStored(stored string, mode Mode) Output {
	return r.RenderDecoded(content.Decode(stored), mode)
}

// RenderLegacy renders pre-section free text.
func (r *Renderer) RenderLegacy(text string) string {
	clean := r.legacy.Sanitize(text)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	return strings.ReplaceAll(clean, "\n", "<br>")
}

// RenderSection renders one section. Unknown kinds render as empty.
func (r *Renderer) RenderSection(sec content.Section) RenderedSection {
	rs := RenderedSection{ID: sec.ID, Kind: sec.Kind}

	switch sec.Kind {
	case content.KindHeader:
		rs.HTML = template.HTML(`<h1 class="section-header">` + html.EscapeString(sec.Text()) + `</h1>`)
	case content.KindSubheader:
		rs.HTML = template.HTML(`<h2 class="section-subheader">` + html.EscapeString(sec.Text()) + `</h2>`)
	case content.KindText:
		rs.HTML = template.HTML(textBlock(sec.Column(content.SidePrimary)))
	case content.KindImage:
		rs.HTML = template.HTML(r.image(sec.Column(content.SidePrimary).ImageURL, "Blog image"))
	case content.KindTwoColumn:
		rs.Left = template.HTML(r.column(sec.Column(content.SideLeft), "Left column image"))
		rs.Right = template.HTML(r.column(sec.Column(content.SideRight), "Right column image"))
		rs.HTML = template.HTML(`<div class="section-columns">` +
			`<div class="column column-left">` + string(rs.Left) + `</div>` +
			`<div class="column column-right">` + string(rs.Right) + `</div>` +
			`</div>`)
	case content.KindCode:
		lang := CodeLanguage(sec.Language)
		rs.Language = lang
		rs.HTML = template.HTML(codeBlock(sec.Text(), lang))
	}
	return rs
}

// column renders one side of a two-column section: its image, if any,
// followed by its text block.
func (r *Renderer) column(col content.Column, alt string) string {
	return r.image(col.ImageURL, alt) + textBlock(col)
}

func (r *Renderer) image(ref, alt string) string {
	src := r.ResolveImage(ref)
	if src == "" {
		return ""
	}
	return `<img class="section-image" src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `">`
}

// ResolveImage turns a stored image reference into a URL. Relative paths
// are joined to the upload base; absolute http(s) URLs pass through. Empty
// or unsafe references resolve to "".
func (r *Renderer) ResolveImage(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return ref
	case "":
		if u.Host != "" {
			// Protocol-relative references point at someone else's host.
			return ""
		}
		return r.uploadBase + "/" + strings.TrimLeft(ref, "/")
	default:
		return ""
	}
}

func textBlock(col content.Column) string {
	if col.Style.BulletList {
		return list(col)
	}
	return paragraph(col)
}

func paragraph(col content.Column) string {
	return `<p class="section-text" style="white-space: pre-wrap; ` + styleDecl(col.Style) + `">` +
		Expand(col.Content) + `</p>`
}

func list(col content.Column) string {
	tag := "ul"
	if col.Style.ListStyle.Ordered() {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString(`<` + tag + ` class="section-list" style="list-style-type: ` + col.Style.ListStyle.CSS() + `; ` + styleDecl(col.Style) + `">`)
	for _, item := range ListItems(col.Content) {
		b.WriteString(`<li style="color: ` + col.Style.Color() + `">` + Expand(item) + `</li>`)
	}
	b.WriteString(`</` + tag + `>`)
	return b.String()
}

// ListItems splits bulleted content into items: one per non-blank line,
// surrounding whitespace trimmed.
func ListItems(text string) []string {
	lines := strings.Split(text, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

func styleDecl(s content.Style) string {
	return "color: " + s.Color() +
		"; font-size: " + s.Size() +
		"; font-weight: " + s.Weight() +
		"; font-style: " + s.FontStyle() +
		"; text-decoration: " + s.Decoration()
}

var languagePattern = regexp.MustCompile(`^[A-Za-z0-9+#._-]{1,32}$`)

// CodeLanguage normalizes a code section's language tag. Absent or
// malformed tags become "plaintext".
func CodeLanguage(lang *string) string {
	if lang == nil {
		return "plaintext"
	}
	l := strings.ToLower(strings.TrimSpace(*lang))
	if !languagePattern.MatchString(l) {
		return "plaintext"
	}
	return l
}

func codeBlock(text, lang string) string {
	return `<pre class="section-code" data-language="` + lang + `"><code class="language-` + lang + `">` +
		html.EscapeString(text) + `</code></pre>`
}
