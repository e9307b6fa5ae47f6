package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"inkpost/internal/content"
	"inkpost/internal/content/catalog"
	"inkpost/internal/editor"
	"inkpost/internal/httputil"
)

// DraftHandler drives editor sessions over HTTP. Every route acts on the
// caller's own sessions; other authors' sessions are reported as not found.
type DraftHandler struct {
	registry *editor.Registry
	store    editor.Store
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(registry *editor.Registry, store editor.Store, catalog *catalog.Catalog, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{
		registry: registry,
		store:    store,
		catalog:  catalog,
		logger:   logger,
	}
}

type openDraftBody struct {
	BlogID string `json:"blogId"`
}

type addSectionBody struct {
	Kind   content.Kind   `json:"type"`
	Layout content.Layout `json:"layout"`
}

type indexBody struct {
	Index *int `json:"index"`
}

type saveDraftBody struct {
	Publish bool `json:"publish"`
}

// session resolves the {id} path value to one of the caller's sessions,
// writing the error response when it cannot.
func (h *DraftHandler) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	id, ok := PathParam(w, r, "id", "Draft ID")
	if !ok {
		return nil, false
	}
	s, err := h.registry.Get(id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, err)
		return nil, false
	}
	return s, true
}

// handleDraftError maps document operation errors before falling back to
// the domain mapping.
func handleDraftError(w http.ResponseWriter, r *http.Request, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, content.ErrSectionNotFound):
		httputil.RespondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, content.ErrIndexOutOfRange),
		errors.Is(err, content.ErrImmutableField),
		errors.Is(err, content.ErrColumnPrimaryField),
		errors.Is(err, editor.ErrNotDragging),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
	default:
		handleError(w, r, err)
	}
}

// CreateDraft starts a session, empty or over an existing blog
// POST /api/drafts
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var body openDraftBody
	if err := httputil.ParseJSON(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := httputil.GetUserID(r)
	var s *editor.Session
	if body.BlogID == "" {
		s = h.registry.Create(userID)
	} else {
		var err error
		s, err = h.registry.Open(r.Context(), h.store, userID, body.BlogID)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	httputil.RespondJSON(w, http.StatusCreated, s.State())
}

// GetDraft returns the session state
// GET /api/drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, s.State())
}

// CloseDraft discards a session without saving
// DELETE /api/drafts/{id}
func (h *DraftHandler) CloseDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Close(r.PathValue("id"), httputil.GetUserID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMeta replaces title, excerpt and cover image
// PUT /api/drafts/{id}/meta
func (h *DraftHandler) SetMeta(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var meta editor.Meta
	if err := httputil.ParseJSON(w, r, &meta); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.SetMeta(meta)

	httputil.RespondJSON(w, http.StatusOK, s.State())
}

// AddSection appends an empty section. The layout defaults to the
// palette's layout for the kind.
// POST /api/drafts/{id}/sections
func (h *DraftHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var body addSectionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	layout := body.Layout
	if layout == "" {
		if st, found := h.catalog.Section(body.Kind); found {
			layout = st.Layout
		}
	}

	sec, err := s.AddSection(body.Kind, layout)
	if err != nil {
		handleDraftError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sec)
}

// UpdateSection merges section fields onto a section
// PATCH /api/drafts/{id}/sections/{sectionId}
func (h *DraftHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	patch, err := httputil.ReadJSON(w, r)
	if err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	sec, err := s.UpdateSection(r.PathValue("sectionId"), patch)
	if err != nil {
		handleDraftError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sec)
}

// DeleteSection removes a section
// DELETE /api/drafts/{id}/sections/{sectionId}
func (h *DraftHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *editor.Session) error {
		return s.DeleteSection(r.PathValue("sectionId"))
	})
}

// MoveUp swaps a section with the one before it
// POST /api/drafts/{id}/sections/{sectionId}/move-up
func (h *DraftHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *editor.Session) error {
		return s.MoveUp(r.PathValue("sectionId"))
	})
}

// MoveDown swaps a section with the one after it
// POST /api/drafts/{id}/sections/{sectionId}/move-down
func (h *DraftHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *editor.Session) error {
		return s.MoveDown(r.PathValue("sectionId"))
	})
}

// PickUp starts dragging the section at index
// POST /api/drafts/{id}/drag
func (h *DraftHandler) PickUp(w http.ResponseWriter, r *http.Request) {
	h.applyIndex(w, r, (*editor.Session).PickUp)
}

// Drop moves the dragged section to index
// POST /api/drafts/{id}/drop
func (h *DraftHandler) Drop(w http.ResponseWriter, r *http.Request) {
	h.applyIndex(w, r, (*editor.Session).Drop)
}

// CancelDrag abandons a drag
// DELETE /api/drafts/{id}/drag
func (h *DraftHandler) CancelDrag(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *editor.Session) error {
		s.CancelDrag()
		return nil
	})
}

// Preview renders the session document for the preview pane
// GET /api/drafts/{id}/preview
func (h *DraftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, s.Preview())
}

// Save persists the session as a blog, publishing it when asked
// POST /api/drafts/{id}/save
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var body saveDraftBody
	if err := httputil.ParseJSON(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	blogID, err := s.Save(r.Context(), h.store, body.Publish)
	if err != nil {
		handleDraftError(w, r, err)
		return
	}

	h.logger.Info("draft saved",
		"session_id", s.ID(),
		"blog_id", blogID,
		"published", body.Publish,
	)

	httputil.RespondJSON(w, http.StatusOK, s.State())
}

// apply runs a structural operation and answers with the new state
func (h *DraftHandler) apply(w http.ResponseWriter, r *http.Request, op func(*editor.Session) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := op(s); err != nil {
		handleDraftError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, s.State())
}

func (h *DraftHandler) applyIndex(w http.ResponseWriter, r *http.Request, op func(*editor.Session, int) error) {
	var body indexBody
	if err := httputil.ParseJSON(w, r, &body); err != nil || body.Index == nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "index is required")
		return
	}
	h.apply(w, r, func(s *editor.Session) error {
		return op(s, *body.Index)
	})
}
