package services

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// ResourceAuthorizer checks whether a user may act on blogs and comments.
// Current implementation: authorship (service/blog.OwnerAuthorizer).
//
// Services call the authorizer before operating on resources, so who may
// access something stays separate from which resource is meant.
type ResourceAuthorizer interface {
	// ReadableBlog returns the blog if viewerID may read it
	ReadableBlog(ctx context.Context, viewerID, blogID string) (*blog.Blog, error)

	// EditableBlog returns the blog if userID may change or delete it
	EditableBlog(ctx context.Context, userID, blogID string) (*blog.Blog, error)

	// DeletableComment returns the comment if userID may delete it
	DeletableComment(ctx context.Context, userID, commentID string) (*blog.Comment, error)
}
