package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"inkpost/internal/content"
)

// ContentField accepts blog content either as the stored string or as a
// JSON array of sections, which is encoded to the stored form.
type ContentField struct {
	Present bool
	Value   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ContentField) UnmarshalJSON(data []byte) error {
	c.Present = true
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		c.Present = false
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &c.Value)
	case len(data) > 0 && data[0] == '[':
		var doc content.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		c.Value = content.Encode(doc)
		return nil
	default:
		return errors.New("content must be a string or an array of sections")
	}
}

// Ptr returns the value for update requests: nil when absent.
func (c ContentField) Ptr() *string {
	if !c.Present {
		return nil
	}
	v := c.Value
	return &v
}
