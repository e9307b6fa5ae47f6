package blog

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// UserService handles user accounts
type UserService interface {
	// FindOrCreate returns the user for a verified identity, registering it
	// on first sight
	FindOrCreate(ctx context.Context, identity blog.Identity) (*blog.User, error)

	// GetProfile returns a user with blog and comment counts
	GetProfile(ctx context.Context, id string) (*blog.UserProfile, error)

	// ListUserBlogs returns one page of a user's blogs. Drafts are included
	// only when viewerID is that user.
	ListUserBlogs(ctx context.Context, viewerID, userID string, page, limit int) (*blog.Page, error)
}
