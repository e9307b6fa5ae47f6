package blog

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// BlogRepository defines data access operations for blogs.
// viewerID, where taken, only decides IsLiked; "" means anonymous.
type BlogRepository interface {
	// Create inserts a blog and fills in ID and timestamps.
	// Returns a ConflictError when the slug is taken.
	Create(ctx context.Context, b *blog.Blog) error

	// GetByID retrieves a blog with author and counts
	GetByID(ctx context.Context, id, viewerID string) (*blog.Blog, error)

	// GetBySlug retrieves a blog with author and counts
	GetBySlug(ctx context.Context, slug, viewerID string) (*blog.Blog, error)

	// Update writes title, slug, content, excerpt, cover image and published
	Update(ctx context.Context, b *blog.Blog) error

	// Delete deletes a blog with its comments and likes
	Delete(ctx context.Context, id string) error

	// List returns one page of blogs, newest first, and the total count
	List(ctx context.Context, filter blog.ListFilter, viewerID string) ([]blog.Blog, int, error)

	// ListPopular returns published blogs by views, then newest first
	ListPopular(ctx context.Context, limit int) ([]blog.Blog, error)

	// IncrementViews adds one view and returns the new count
	IncrementViews(ctx context.Context, id string) (int, error)

	// SlugExists reports whether another blog (not excludeID) uses slug
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// LikeRepository stores one like per user per blog.
type LikeRepository interface {
	Exists(ctx context.Context, blogID, userID string) (bool, error)

	// Create returns a ConflictError if the like already exists
	Create(ctx context.Context, blogID, userID string) error

	// Delete returns ErrNotFound if there was no like
	Delete(ctx context.Context, blogID, userID string) error
}
