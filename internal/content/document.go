package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound is returned when an operation addresses an id that
	// is not in the document.
	ErrSectionNotFound = errors.New("section not found")

	// ErrIndexOutOfRange is returned by Move for indexes outside the document.
	ErrIndexOutOfRange = errors.New("section index out of range")

	// ErrImmutableField is returned when an update tries to change a
	// section's id or kind.
	ErrImmutableField = errors.New("section id and type cannot change")

	// ErrColumnPrimaryField is returned when an update fills the top-level
	// content or image of a two-column section.
	ErrColumnPrimaryField = errors.New("two-column sections take left and right fields only")
)

// Document is the ordered sequence of sections making up one blog body.
//
// Operations never modify the receiver; each returns a rebuilt document so
// a failed operation leaves the caller's value untouched.
type Document []Section

// Len returns the number of sections.
func (d Document) Len() int { return len(d) }

// IDs returns the section ids in document order.
func (d Document) IDs() []string {
	ids := make([]string, len(d))
	for i, s := range d {
		ids[i] = s.ID
	}
	return ids
}

// Index returns the position of the section with the given id, or -1.
func (d Document) Index(id string) int {
	for i, s := range d {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the section with the given id.
func (d Document) Get(id string) (Section, error) {
	i := d.Index(id)
	if i < 0 {
		return Section{}, fmt.Errorf("%s: %w", id, ErrSectionNotFound)
	}
	return d[i].Clone(), nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for i, s := range d {
		out[i] = s.Clone()
	}
	return out
}

// Append returns a document with sec added at the end.
func (d Document) Append(sec Section) Document {
	out := make(Document, 0, len(d)+1)
	out = append(out, d.Clone()...)
	return append(out, sec.Clone())
}

// Update returns a document where fn has been applied to a copy of the
// section with the given id. fn may not change the id or kind, and may not
// give a two-column section top-level content or an image.
func (d Document) Update(id string, fn func(*Section)) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, fmt.Errorf("%s: %w", id, ErrSectionNotFound)
	}

	updated := d[i].Clone()
	fn(&updated)
	if updated.ID != d[i].ID || updated.Kind != d[i].Kind {
		return d, ErrImmutableField
	}
	if updated.Kind == KindTwoColumn && (updated.Text() != "" || deref(updated.ImageURL) != "") {
		return d, ErrColumnPrimaryField
	}

	out := d.Clone()
	out[i] = updated
	return out, nil
}

// Patch merges a JSON object onto the section with the given id. Keys that
// are present overwrite, null clears, absent keys are left as they were.
func (d Document) Patch(id string, patch []byte) (Document, error) {
	var decodeErr error
	out, err := d.Update(id, func(s *Section) {
		decodeErr = json.Unmarshal(patch, s)
	})
	if decodeErr != nil {
		return d, fmt.Errorf("decode section patch: %w", decodeErr)
	}
	return out, err
}

// Delete returns a document without the section with the given id.
func (d Document) Delete(id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, fmt.Errorf("%s: %w", id, ErrSectionNotFound)
	}
	out := make(Document, 0, len(d)-1)
	for j, s := range d {
		if j != i {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

// MoveUp swaps the section with its predecessor. The first section stays put.
func (d Document) MoveUp(id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, fmt.Errorf("%s: %w", id, ErrSectionNotFound)
	}
	if i == 0 {
		return d.Clone(), nil
	}
	return d.Move(i, i-1)
}

// MoveDown swaps the section with its successor. The last section stays put.
func (d Document) MoveDown(id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, fmt.Errorf("%s: %w", id, ErrSectionNotFound)
	}
	if i == len(d)-1 {
		return d.Clone(), nil
	}
	return d.Move(i, i+1)
}

// Move removes the section at from and inserts it at to, keeping the
// relative order of every other section. Out-of-range indexes leave the
// document unchanged.
func (d Document) Move(from, to int) (Document, error) {
	if from < 0 || from >= len(d) || to < 0 || to >= len(d) {
		return d, fmt.Errorf("move %d -> %d in %d sections: %w", from, to, len(d), ErrIndexOutOfRange)
	}

	rest := make(Document, 0, len(d)-1)
	for i, s := range d {
		if i != from {
			rest = append(rest, s.Clone())
		}
	}

	out := make(Document, 0, len(d))
	out = append(out, rest[:to]...)
	out = append(out, d[from].Clone())
	out = append(out, rest[to:]...)
	return out, nil
}
