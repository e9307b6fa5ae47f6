package handler

import (
	"net/http"

	"inkpost/internal/middleware"
)

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Health  *HealthHandler
	Blog    *BlogHandler
	Comment *CommentHandler
	User    *UserHandler
	Upload  *UploadHandler
	Content *ContentHandler
	Draft   *DraftHandler
}

// Register mounts all routes on mux (Go 1.22+ enhanced patterns). Routes
// that write require an authenticated caller; reads accept anonymous ones.
func Register(mux *http.ServeMux, h *Handlers) {
	auth := middleware.RequireAuth

	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Blog routes
	mux.HandleFunc("POST /api/blogs", auth(h.Blog.CreateBlog))
	mux.HandleFunc("GET /api/blogs", h.Blog.ListBlogs)
	mux.HandleFunc("GET /api/blogs/popular", h.Blog.ListPopular) // More specific than {slug}
	mux.HandleFunc("GET /api/blogs/id/{id}", h.Blog.GetBlogByID)
	mux.HandleFunc("GET /api/blogs/{slug}", h.Blog.GetBlogBySlug)
	mux.HandleFunc("PATCH /api/blogs/{id}", auth(h.Blog.UpdateBlog))
	mux.HandleFunc("DELETE /api/blogs/{id}", auth(h.Blog.DeleteBlog))
	mux.HandleFunc("POST /api/blogs/{id}/like", auth(h.Blog.ToggleLike))
	mux.HandleFunc("GET /api/render/{slug}", h.Blog.RenderBlog)

	// Comment routes
	mux.HandleFunc("POST /api/comments", auth(h.Comment.CreateComment))
	mux.HandleFunc("GET /api/comments/blog/{blogId}", h.Comment.ListComments)
	mux.HandleFunc("DELETE /api/comments/{id}", auth(h.Comment.DeleteComment))

	// User routes
	mux.HandleFunc("POST /api/auth/me", auth(h.User.Me))
	mux.HandleFunc("GET /api/users/{id}", h.User.GetProfile)
	mux.HandleFunc("GET /api/users/{id}/blogs", h.User.ListUserBlogs)

	// Upload routes
	mux.HandleFunc("POST /api/uploads/image", auth(h.Upload.UploadImage))
	mux.HandleFunc("GET /uploads/{name}", h.Upload.ServeFile)

	// Content tooling
	mux.HandleFunc("POST /api/content/preview", h.Content.Preview)
	mux.HandleFunc("POST /api/content/summary", h.Content.Summary)
	mux.HandleFunc("GET /api/content/catalog", h.Content.Catalog)

	// Draft (editor session) routes
	mux.HandleFunc("POST /api/drafts", auth(h.Draft.CreateDraft))
	mux.HandleFunc("GET /api/drafts/{id}", auth(h.Draft.GetDraft))
	mux.HandleFunc("DELETE /api/drafts/{id}", auth(h.Draft.CloseDraft))
	mux.HandleFunc("PUT /api/drafts/{id}/meta", auth(h.Draft.SetMeta))
	mux.HandleFunc("POST /api/drafts/{id}/sections", auth(h.Draft.AddSection))
	mux.HandleFunc("PATCH /api/drafts/{id}/sections/{sectionId}", auth(h.Draft.UpdateSection))
	mux.HandleFunc("DELETE /api/drafts/{id}/sections/{sectionId}", auth(h.Draft.DeleteSection))
	mux.HandleFunc("POST /api/drafts/{id}/sections/{sectionId}/move-up", auth(h.Draft.MoveUp))
	mux.HandleFunc("POST /api/drafts/{id}/sections/{sectionId}/move-down", auth(h.Draft.MoveDown))
	mux.HandleFunc("POST /api/drafts/{id}/drag", auth(h.Draft.PickUp))
	mux.HandleFunc("DELETE /api/drafts/{id}/drag", auth(h.Draft.CancelDrag))
	mux.HandleFunc("POST /api/drafts/{id}/drop", auth(h.Draft.Drop))
	mux.HandleFunc("GET /api/drafts/{id}/preview", auth(h.Draft.Preview))
	mux.HandleFunc("POST /api/drafts/{id}/save", auth(h.Draft.Save))
}
