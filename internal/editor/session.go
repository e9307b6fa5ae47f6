// Package editor holds in-memory editing sessions. A Session owns one
// document and applies one mutation at a time; the document is only
// handed to persistence when the session is saved.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"inkpost/internal/content"
	"inkpost/internal/content/render"
	"inkpost/internal/domain"
)

var (
	// ErrNotDragging is returned by Drop when no section was picked up.
	ErrNotDragging = errors.New("no section is being dragged")

	ErrTitleRequired   = fmt.Errorf("%w: title is required", domain.ErrValidation)
	ErrContentRequired = fmt.Errorf("%w: at least one section is required", domain.ErrValidation)
)

// Snapshot is the persisted form of a session: the fields the persistence
// collaborator stores, with Content already encoded.
type Snapshot struct {
	BlogID     string
	Title      string
	Content    string
	Excerpt    string
	CoverImage string
	Published  bool
}

// Store is the persistence collaborator. SaveDraft creates a blog when
// BlogID is empty and returns the id it was saved under.
type Store interface {
	SaveDraft(ctx context.Context, authorID string, s Snapshot) (string, error)
	LoadDraft(ctx context.Context, authorID, blogID string) (Snapshot, error)
}

// Meta is the non-section part of a post being edited.
type Meta struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
}

// Control is the state of one section's editing controls.
type Control struct {
	Index       int          `json:"index"`
	ID          string       `json:"id"`
	Kind        content.Kind `json:"type"`
	CanMoveUp   bool         `json:"canMoveUp"`
	CanMoveDown bool         `json:"canMoveDown"`
	Dragging    bool         `json:"dragging"`
}

// State is a consistent copy of a session taken under its lock.
type State struct {
	ID        string           `json:"id"`
	BlogID    string           `json:"blogId,omitempty"`
	Meta      Meta             `json:"meta"`
	Published bool             `json:"published"`
	Sections  content.Document `json:"sections"`
	Controls  []Control        `json:"controls"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Session is one editing session. All methods are safe to call from
// multiple goroutines; mutations are serialized by the session lock so the
// document only ever moves between complete states.
type Session struct {
	mu sync.Mutex

	id       string
	authorID string
	blogID   string

	meta      Meta
	published bool
	doc       content.Document

	// dragFrom is the picked-up index, or -1.
	dragFrom int

	renderer  *render.Renderer
	now       func() time.Time
	updatedAt time.Time
}

// NewSession starts an empty session.
func NewSession(id, authorID string, renderer *render.Renderer) *Session {
	s := &Session{
		id:       id,
		authorID: authorID,
		doc:      content.Document{},
		dragFrom: -1,
		renderer: renderer,
		now:      time.Now,
	}
	s.updatedAt = s.now()
	return s
}

// Open starts a session over an existing blog. Legacy free-text content is
// converted into a single text section so it can be edited.
func Open(id, authorID string, renderer *render.Renderer, snap Snapshot) *Session {
	s := NewSession(id, authorID, renderer)
	s.blogID = snap.BlogID
	s.published = snap.Published
	s.meta = Meta{Title: snap.Title, Excerpt: snap.Excerpt, CoverImage: snap.CoverImage}

	decoded := content.Decode(snap.Content)
	switch {
	case decoded.IsStructured():
		s.doc = decoded.Document
	case strings.TrimSpace(decoded.Text) != "":
		sec := content.NewSection(content.KindText, content.LayoutSingle)
		sec.Content = content.String(decoded.Text)
		s.doc = content.Document{sec}
	}
	return s
}

func (s *Session) ID() string       { return s.id }
func (s *Session) AuthorID() string { return s.authorID }

// BlogID returns the id of the blog the session saves to, or "" before the
// first save of a new post.
func (s *Session) BlogID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blogID
}

// UpdatedAt returns the time of the last mutation or save.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// State returns a copy of the whole session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:        s.id,
		BlogID:    s.blogID,
		Meta:      s.meta,
		Published: s.published,
		Sections:  s.doc.Clone(),
		Controls:  s.controlsLocked(),
		UpdatedAt: s.updatedAt,
	}
}

// Document returns a copy of the current document.
func (s *Session) Document() content.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// SetMeta replaces title, excerpt and cover image.
func (s *Session) SetMeta(m Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = m
	s.touchLocked()
}

// AddSection appends an empty section of kind and returns it.
func (s *Session) AddSection(kind content.Kind, layout content.Layout) (content.Section, error) {
	if !kind.Valid() {
		return content.Section{}, fmt.Errorf("%w: unknown section type %q", domain.ErrValidation, kind)
	}
	sec := content.NewSection(kind, layout)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = s.doc.Append(sec)
	s.touchLocked()
	return sec.Clone(), nil
}

// UpdateSection merges a JSON object of section fields onto the section.
func (s *Session) UpdateSection(id string, patch []byte) (content.Section, error) {
	return s.mutateSection(id, func(doc content.Document) (content.Document, error) {
		return doc.Patch(id, patch)
	})
}

func (s *Session) mutateSection(id string, op func(content.Document) (content.Document, error)) (content.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.doc)
	if err != nil {
		return content.Section{}, err
	}
	s.doc = next
	s.touchLocked()
	return s.doc.Get(id)
}

// DeleteSection removes a section. An in-progress drag is cancelled since
// its source index may no longer be valid.
func (s *Session) DeleteSection(id string) error {
	return s.replace(func(doc content.Document) (content.Document, error) {
		return doc.Delete(id)
	})
}

// MoveUp swaps a section with its predecessor.
func (s *Session) MoveUp(id string) error {
	return s.replace(func(doc content.Document) (content.Document, error) {
		return doc.MoveUp(id)
	})
}

// MoveDown swaps a section with its successor.
func (s *Session) MoveDown(id string) error {
	return s.replace(func(doc content.Document) (content.Document, error) {
		return doc.MoveDown(id)
	})
}

func (s *Session) replace(op func(content.Document) (content.Document, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.doc)
	if err != nil {
		return err
	}
	s.doc = next
	s.dragFrom = -1
	s.touchLocked()
	return nil
}

// PickUp starts a drag of the section at index.
func (s *Session) PickUp(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.doc) {
		return fmt.Errorf("pick up %d of %d sections: %w", index, len(s.doc), content.ErrIndexOutOfRange)
	}
	s.dragFrom = index
	return nil
}

// Drop finishes a drag by moving the picked-up section to index. The move
// applies completely or not at all; either way the drag ends.
func (s *Session) Drop(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.dragFrom
	if from < 0 {
		return ErrNotDragging
	}
	s.dragFrom = -1
	if from == index {
		return nil
	}

	next, err := s.doc.Move(from, index)
	if err != nil {
		return err
	}
	s.doc = next
	s.touchLocked()
	return nil
}

// CancelDrag abandons a drag without changing the document.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragFrom = -1
}

// Dragging reports the picked-up index, if any.
func (s *Session) Dragging() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragFrom, s.dragFrom >= 0
}

// Controls returns the per-section control state in document order.
func (s *Session) Controls() []Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controlsLocked()
}

func (s *Session) controlsLocked() []Control {
	controls := make([]Control, len(s.doc))
	for i, sec := range s.doc {
		controls[i] = Control{
			Index:       i,
			ID:          sec.ID,
			Kind:        sec.Kind,
			CanMoveUp:   i > 0,
			CanMoveDown: i < len(s.doc)-1,
			Dragging:    i == s.dragFrom,
		}
	}
	return controls
}

// Preview renders the current document for the editor's preview pane.
func (s *Session) Preview() render.Output {
	doc := s.Document()
	return s.renderer.Render(doc, render.ModePreview)
}

// Encode returns the current document in its stored form.
func (s *Session) Encode() string {
	return content.Encode(s.Document())
}

// Save validates the session and hands it to the store. The store is
// called without the session lock held; the document saved is the one
// current when Save was called.
func (s *Session) Save(ctx context.Context, store Store, publish bool) (string, error) {
	s.mu.Lock()
	meta, doc, blogID := s.meta, s.doc.Clone(), s.blogID
	s.mu.Unlock()

	if strings.TrimSpace(meta.Title) == "" {
		return "", ErrTitleRequired
	}
	if len(doc) == 0 {
		return "", ErrContentRequired
	}
	if err := content.Validate(doc); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	savedID, err := store.SaveDraft(ctx, s.authorID, Snapshot{
		BlogID:     blogID,
		Title:      strings.TrimSpace(meta.Title),
		Content:    content.Encode(doc),
		Excerpt:    strings.TrimSpace(meta.Excerpt),
		CoverImage: meta.CoverImage,
		Published:  publish,
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.blogID = savedID
	s.published = publish
	s.touchLocked()
	s.mu.Unlock()
	return savedID, nil
}

func (s *Session) touchLocked() {
	s.updatedAt = s.now()
}
