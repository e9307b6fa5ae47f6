package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Variant tells which of the two shapes a stored content string decoded to.
type Variant int

const (
	// Structured content is a section list written by Encode.
	Structured Variant = iota + 1
	// LegacyText is free text written before sections existed.
	LegacyText
)

func (v Variant) String() string {
	switch v {
	case Structured:
		return "structured"
	case LegacyText:
		return "legacy_text"
	default:
		return "unknown"
	}
}

// MarshalText renders the variant by name in API responses.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText accepts the names written by MarshalText.
func (v *Variant) UnmarshalText(text []byte) error {
	switch string(text) {
	case "structured":
		*v = Structured
	case "legacy_text":
		*v = LegacyText
	default:
		return fmt.Errorf("unknown content variant %q", text)
	}
	return nil
}

// Decoded is the result of Decode. Exactly one of Document (Structured) or
// Text (LegacyText) is meaningful.
type Decoded struct {
	Variant  Variant
	Document Document
	Text     string
}

// IsStructured reports whether the stored string held section data.
func (d Decoded) IsStructured() bool {
	return d.Variant == Structured
}

// Encode serializes the document to the string handed to persistence.
// Order and every optional field are preserved; an empty document encodes
// as "[]". Content text is written verbatim, markup delimiters included.
// Invalid UTF-8 is written as U+FFFD; Validate rejects such sections.
func Encode(doc Document) string {
	if doc == nil {
		doc = Document{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Section holds only strings, bools and pointers to them, so encoding
	// cannot fail.
	_ = enc.Encode(doc)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Decode parses a stored content string. Anything that is not a JSON array
// whose every element is a section object comes back as LegacyText carrying the input unchanged;
// Decode never fails.
func Decode(stored string) Decoded {
	trimmed := strings.TrimSpace(stored)
	if !strings.HasPrefix(trimmed, "[") {
		return Decoded{Variant: LegacyText, Text: stored}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
		return Decoded{Variant: LegacyText, Text: stored}
	}

	doc := make(Document, len(elems))
	for i, raw := range elems {
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			return Decoded{Variant: LegacyText, Text: stored}
		}
		if err := json.Unmarshal(raw, &doc[i]); err != nil {
			return Decoded{Variant: LegacyText, Text: stored}
		}
	}
	return Decoded{Variant: Structured, Document: doc}
}
