package handler

import (
	"log/slog"
	"net/http"

	"inkpost/internal/config"
	"inkpost/internal/content"
	"inkpost/internal/content/catalog"
	"inkpost/internal/content/render"
	"inkpost/internal/httputil"
)

// ContentHandler exposes the content core: rendering, summaries and the
// editor palette. None of its endpoints touch storage.
type ContentHandler struct {
	renderer *render.Renderer
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(renderer *render.Renderer, catalog *catalog.Catalog, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		renderer: renderer,
		catalog:  catalog,
		logger:   logger,
	}
}

type previewBody struct {
	Content ContentField `json:"content"`
	Mode    string       `json:"mode"`
}

type summaryBody struct {
	Content ContentField `json:"content"`
	Budget  int          `json:"budget"`
}

type summaryResponse struct {
	Variant content.Variant `json:"variant"`
	Summary string          `json:"summary"`
}

// Preview renders stored content or a section array. Mode defaults to preview.
// POST /api/content/preview
func (h *ContentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var body previewBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode := render.ModePreview
	if body.Mode != "" {
		mode = render.ParseMode(body.Mode)
	}

	httputil.RespondJSON(w, http.StatusOK, h.renderer.RenderStored(body.Content.Value, mode))
}

// Summary derives the plain-text preview of content
// POST /api/content/summary
func (h *ContentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var body summaryBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget := body.Budget
	if budget <= 0 {
		budget = config.SummaryBudget
	}

	decoded := content.Decode(body.Content.Value)
	resp := summaryResponse{Variant: decoded.Variant}
	if decoded.IsStructured() {
		resp.Summary = content.Summary(decoded.Document, budget)
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Catalog returns the section editor palette
// GET /api/content/catalog
func (h *ContentHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.catalog.Palette())
}
