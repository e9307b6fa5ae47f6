package handler

import (
	"log/slog"
	"net/http"

	"inkpost/internal/config"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/httputil"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	userService blogSvc.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService blogSvc.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Me returns the caller's account. The auth middleware has already
// registered it on first sight.
// POST /api/auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}

// GetProfile returns a user with blog and comment counts
// GET /api/users/{id}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "User ID")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// ListUserBlogs returns one page of a user's blogs
// GET /api/users/{id}/blogs?page=1&limit=10
func (h *UserHandler) ListUserBlogs(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "User ID")
	if !ok {
		return
	}
	page := QueryInt(r, "page", 1, 1, 1<<20)
	limit := QueryInt(r, "limit", config.DefaultPageSize, 1, config.MaxPageSize)

	blogs, err := h.userService.ListUserBlogs(r.Context(), httputil.GetUserID(r), id, page, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, blogs)
}
