package blog

import (
	"context"

	"inkpost/internal/content/render"
	"inkpost/internal/domain/models/blog"
)

// BlogService handles blog business logic. viewerID is the caller's user
// id or "" for anonymous callers; userID is always an authenticated caller.
type BlogService interface {
	// CreateBlog creates a blog owned by userID with a slug derived from the title
	CreateBlog(ctx context.Context, userID string, req *CreateBlogRequest) (*blog.Blog, error)

	// ListBlogs returns one page of blogs, newest first
	ListBlogs(ctx context.Context, viewerID string, req *ListBlogsRequest) (*blog.Page, error)

	// ListPopular returns the most viewed published blogs (cached)
	ListPopular(ctx context.Context, limit int) ([]blog.Blog, error)

	// GetBlog retrieves a blog by id without counting a view
	GetBlog(ctx context.Context, viewerID, id string) (*blog.Blog, error)

	// GetBlogBySlug retrieves a blog by slug and counts at most one view per
	// viewKey per view window. viewKey identifies the reader (user id or
	// client address); "" counts every read.
	GetBlogBySlug(ctx context.Context, viewerID, viewKey, slug string) (*blog.Blog, error)

	// RenderBlog retrieves a blog by slug and renders its content. It does
	// not count a view.
	RenderBlog(ctx context.Context, viewerID, slug string, mode render.Mode) (*RenderedBlog, error)

	// UpdateBlog updates a blog; only its author may
	UpdateBlog(ctx context.Context, userID, id string, req *UpdateBlogRequest) (*blog.Blog, error)

	// DeleteBlog deletes a blog; only its author may
	DeleteBlog(ctx context.Context, userID, id string) error

	// ToggleLike likes or unlikes a blog and reports the new state
	ToggleLike(ctx context.Context, userID, blogID string) (bool, error)
}

// CreateBlogRequest represents a blog creation request
type CreateBlogRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"` // encoded section document
	Excerpt    *string `json:"excerpt,omitempty"`
	CoverImage *string `json:"coverImage,omitempty"`
	Published  bool    `json:"published"`
}

// UpdateBlogRequest represents a partial blog update. Nil fields are left
// unchanged; a new title also moves the slug.
type UpdateBlogRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	CoverImage *string `json:"coverImage,omitempty"`
	Published  *bool   `json:"published,omitempty"`
}

// ListBlogsRequest represents listing query parameters
type ListBlogsRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Author string `json:"author,omitempty"` // author email

	// ViewerEmail is the caller's email; drafts are listed when it matches Author.
	ViewerEmail string `json:"-"`
}

// RenderedBlog is a blog with its content rendered to HTML.
type RenderedBlog struct {
	Blog     *blog.Blog    `json:"blog"`
	Rendered render.Output `json:"rendered"`
}
