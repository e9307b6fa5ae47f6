package blog

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// CommentService handles comment business logic
type CommentService interface {
	// CreateComment adds a comment or a reply to a top-level comment
	CreateComment(ctx context.Context, userID string, req *CreateCommentRequest) (*blog.Comment, error)

	// ListComments returns top-level comments newest first, each with its
	// replies oldest first. The blog must be visible to viewerID.
	ListComments(ctx context.Context, viewerID, blogID string) ([]blog.Comment, error)

	// DeleteComment deletes a comment; only its author may
	DeleteComment(ctx context.Context, userID, id string) error
}

// CreateCommentRequest represents a comment creation request
type CreateCommentRequest struct {
	BlogID   string  `json:"blogId"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId,omitempty"`
}
