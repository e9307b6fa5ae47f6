package handler

import (
	"log/slog"
	"net/http"

	"inkpost/internal/config"
	"inkpost/internal/content/render"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/httputil"
)

// BlogHandler handles blog HTTP requests
type BlogHandler struct {
	blogService blogSvc.BlogService
	logger      *slog.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService blogSvc.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		logger:      logger,
	}
}

type createBlogBody struct {
	Title      string       `json:"title"`
	Content    ContentField `json:"content"`
	Excerpt    *string      `json:"excerpt"`
	CoverImage *string      `json:"coverImage"`
	Published  bool         `json:"published"`
}

type updateBlogBody struct {
	Title      *string                 `json:"title"`
	Content    ContentField            `json:"content"`
	Excerpt    httputil.OptionalString `json:"excerpt"`
	CoverImage httputil.OptionalString `json:"coverImage"`
	Published  *bool                   `json:"published"`
}

// CreateBlog creates a new blog
// POST /api/blogs
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var body createBlogBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.blogService.CreateBlog(r.Context(), httputil.GetUserID(r), &blogSvc.CreateBlogRequest{
		Title:      body.Title,
		Content:    body.Content.Value,
		Excerpt:    body.Excerpt,
		CoverImage: body.CoverImage,
		Published:  body.Published,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, b)
}

// ListBlogs lists blogs, newest first
// GET /api/blogs?page=1&limit=10&author=email
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	req := &blogSvc.ListBlogsRequest{
		Page:        QueryInt(r, "page", 1, 1, 1<<20),
		Limit:       QueryInt(r, "limit", config.DefaultPageSize, 1, config.MaxPageSize),
		Author:      r.URL.Query().Get("author"),
		ViewerEmail: httputil.GetUserEmail(r),
	}

	page, err := h.blogService.ListBlogs(r.Context(), httputil.GetUserID(r), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// ListPopular lists the most viewed blogs
// GET /api/blogs/popular?limit=6
func (h *BlogHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", config.DefaultPopularLimit, 1, config.MaxPageSize)

	blogs, err := h.blogService.ListPopular(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, blogs)
}

// GetBlogByID retrieves a blog without counting a view
// GET /api/blogs/id/{id}
func (h *BlogHandler) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Blog ID")
	if !ok {
		return
	}

	b, err := h.blogService.GetBlog(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, b)
}

// GetBlogBySlug retrieves a blog and counts the view
// GET /api/blogs/{slug}
func (h *BlogHandler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := PathParam(w, r, "slug", "Slug")
	if !ok {
		return
	}

	b, err := h.blogService.GetBlogBySlug(r.Context(), httputil.GetUserID(r), httputil.ClientKey(r), slug)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, b)
}

// RenderBlog renders a blog's content to HTML
// GET /api/render/{slug}?mode=render|preview
func (h *BlogHandler) RenderBlog(w http.ResponseWriter, r *http.Request) {
	slug, ok := PathParam(w, r, "slug", "Slug")
	if !ok {
		return
	}
	mode := render.ParseMode(r.URL.Query().Get("mode"))

	rendered, err := h.blogService.RenderBlog(r.Context(), httputil.GetUserID(r), slug, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rendered)
}

// UpdateBlog updates a blog
// PATCH /api/blogs/{id}
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Blog ID")
	if !ok {
		return
	}

	var body updateBlogBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.blogService.UpdateBlog(r.Context(), httputil.GetUserID(r), id, &blogSvc.UpdateBlogRequest{
		Title:      body.Title,
		Content:    body.Content.Ptr(),
		Excerpt:    body.Excerpt.Patch(),
		CoverImage: body.CoverImage.Patch(),
		Published:  body.Published,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, b)
}

// DeleteBlog deletes a blog
// DELETE /api/blogs/{id}
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Blog ID")
	if !ok {
		return
	}

	if err := h.blogService.DeleteBlog(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike likes or unlikes a blog
// POST /api/blogs/{id}/like
func (h *BlogHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Blog ID")
	if !ok {
		return
	}

	liked, err := h.blogService.ToggleLike(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}
