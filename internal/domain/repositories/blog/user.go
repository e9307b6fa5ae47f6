package blog

import (
	"context"

	"inkpost/internal/domain/models/blog"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*blog.User, error)

	// GetByFirebaseID looks a user up by identity provider subject
	GetByFirebaseID(ctx context.Context, firebaseID string) (*blog.User, error)

	// Create inserts a user. Returns a ConflictError when the firebase id
	// or email is already registered.
	Create(ctx context.Context, u *blog.User) error

	// GetProfile returns the user with blog and comment counts
	GetProfile(ctx context.Context, id string) (*blog.UserProfile, error)
}
