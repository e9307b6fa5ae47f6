package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "250 characters truncated",
			doc:  Document{{ID: "a", Kind: KindText, Content: String(strings.Repeat("x", 250))}},
			want: strings.Repeat("x", 200) + Ellipsis,
		},
		{
			name: "150 characters untouched",
			doc:  Document{{ID: "a", Kind: KindText, Content: String(strings.Repeat("x", 150))}},
			want: strings.Repeat("x", 150),
		},
		{
			name: "exactly at budget",
			doc:  Document{{ID: "a", Kind: KindText, Content: String(strings.Repeat("x", 200))}},
			want: strings.Repeat("x", 200),
		},
		{
			name: "only text-bearing kinds joined",
			doc: Document{
				{ID: "a", Kind: KindHeader, Content: String("Title")},
				{ID: "b", Kind: KindImage, ImageURL: String("/uploads/x.png")},
				{ID: "c", Kind: KindSubheader, Content: String("Sub")},
				{ID: "d", Kind: KindCode, Content: String("code()")},
				{ID: "e", Kind: KindTwoColumn, LeftContent: String("left")},
				{ID: "f", Kind: KindText, Content: String("Body")},
			},
			want: "Title Sub Body",
		},
		{
			name: "tags stripped",
			doc:  Document{{ID: "a", Kind: KindText, Content: String("<b>bold</b> &amp; <i>it</i>")}},
			want: "bold & it",
		},
		{
			name: "multibyte counted as characters",
			doc:  Document{{ID: "a", Kind: KindText, Content: String(strings.Repeat("é", 201))}},
			want: strings.Repeat("é", 200) + Ellipsis,
		},
		{
			name: "empty document",
			doc:  Document{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.doc, DefaultSummaryBudget))
		})
	}
}

func TestSummaryFromStored(t *testing.T) {
	stored := Encode(Document{{ID: "a", Kind: KindText, Content: String("hello")}})
	assert.Equal(t, "hello", SummaryFromStored(stored, DefaultSummaryBudget))

	assert.Equal(t, "", SummaryFromStored("legacy free text", DefaultSummaryBudget))
	assert.Equal(t, "", SummaryFromStored("[broken", DefaultSummaryBudget))
	assert.Equal(t, "", SummaryFromStored(stored, 0))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "plain", StripTags("plain"))
	assert.Equal(t, "a b", StripTags("<p>a</p> <script>x</script>b"))
	assert.Equal(t, "1 < 2", StripTags("1 &lt; 2"))
}
