package blog

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// CommentRepository defines data access operations for comments
type CommentRepository interface {
	// Create inserts a comment and fills in ID and timestamps
	Create(ctx context.Context, c *blog.Comment) error

	// GetByID retrieves a comment with its author
	GetByID(ctx context.Context, id string) (*blog.Comment, error)

	// ListByBlog returns every comment of a blog, oldest first, unthreaded
	ListByBlog(ctx context.Context, blogID string) ([]blog.Comment, error)

	// Delete deletes a comment and its replies
	Delete(ctx context.Context, id string) error
}
