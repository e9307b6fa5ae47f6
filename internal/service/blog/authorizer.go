package blog

import (
	"context"
	"fmt"

	"inkpost/internal/domain"
	models "inkpost/internal/domain/models/blog"
	blogRepo "inkpost/internal/domain/repositories/blog"
	"inkpost/internal/domain/services"
)

// OwnerAuthorizer decides access to blogs and comments by authorship.
// Unpublished blogs of other authors are reported as not found so their
// existence does not leak; published ones owned by someone else are
// forbidden.
type OwnerAuthorizer struct {
	blogRepo    blogRepo.BlogRepository
	commentRepo blogRepo.CommentRepository
}

var _ services.ResourceAuthorizer = (*OwnerAuthorizer)(nil)

// NewOwnerAuthorizer creates a new ownership-based authorizer
func NewOwnerAuthorizer(blogRepo blogRepo.BlogRepository, commentRepo blogRepo.CommentRepository) *OwnerAuthorizer {
	return &OwnerAuthorizer{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
	}
}

// ReadableBlog loads a blog that viewerID may read
func (a *OwnerAuthorizer) ReadableBlog(ctx context.Context, viewerID, blogID string) (*models.Blog, error) {
	b, err := a.blogRepo.GetByID(ctx, blogID, viewerID)
	if err != nil {
		return nil, err
	}
	if !b.VisibleTo(viewerID) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("blog not found: %s", blogID)}
	}
	return b, nil
}

// EditableBlog loads a blog that userID wrote
func (a *OwnerAuthorizer) EditableBlog(ctx context.Context, userID, blogID string) (*models.Blog, error) {
	b, err := a.ReadableBlog(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(userID) {
		return nil, &domain.ForbiddenError{Message: fmt.Sprintf("access denied to blog %s", blogID)}
	}
	return b, nil
}

// DeletableComment loads a comment that userID wrote
func (a *OwnerAuthorizer) DeletableComment(ctx context.Context, userID, commentID string) (*models.Comment, error) {
	c, err := a.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, &domain.ForbiddenError{Message: fmt.Sprintf("access denied to comment %s", commentID)}
	}
	return c, nil
}
