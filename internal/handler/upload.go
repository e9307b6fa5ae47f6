package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"inkpost/internal/domain"
	"inkpost/internal/httputil"
	"inkpost/internal/service/upload"
)

// UploadHandler accepts image uploads and serves stored files
type UploadHandler struct {
	store    *upload.ImageStore
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store *upload.ImageStore, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// UploadImage stores one image from the multipart field "file"
// POST /api/uploads/image
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart envelope around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64<<10)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, r, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		httputil.RespondError(w, r, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	h.logger.Debug("upload received",
		"filename", header.Filename,
		"size", header.Size,
		"user_id", httputil.GetUserID(r),
	)

	saved, err := h.store.SaveImage(r.Context(), file)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, saved)
}

// ServeFile serves a stored upload
// GET /uploads/{name}
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	f, err := h.store.Open(r.PathValue("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		handleError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
