package handler

import (
	"log/slog"
	"net/http"

	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/httputil"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentService blogSvc.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService blogSvc.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// CreateComment adds a comment or reply
// POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req blogSvc.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments returns the comment thread of a blog
// GET /api/comments/blog/{blogId}
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	blogID, ok := PathParam(w, r, "blogId", "Blog ID")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), httputil.GetUserID(r), blogID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// DeleteComment deletes a comment
// DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Comment ID")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
