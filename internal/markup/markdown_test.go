package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis",
			in:       "**hi** and *there*",
			contains: []string{"<strong>hi</strong>", "<em>there</em>"},
		},
		{
			name:        "raw html dropped",
			in:          "**hi** <script>alert(1)</script>",
			contains:    []string{"<strong>hi</strong>"},
			notContains: []string{"<script", "raw HTML"},
		},
		{
			name:     "external links open safely",
			in:       "[site](https://example.com)",
			contains: []string{`href="https://example.com"`, "nofollow", "noopener", `target="_blank"`},
		},
		{
			name:        "javascript links removed",
			in:          "[x](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:     "strikethrough",
			in:       "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(RenderMarkdown(tt.in))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}
