package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"inkpost/internal/config"
	"inkpost/internal/domain"
	models "inkpost/internal/domain/models/blog"
	blogRepo "inkpost/internal/domain/repositories/blog"
	blogSvc "inkpost/internal/domain/services/blog"
)

// userService implements the UserService interface
type userService struct {
	userRepo blogRepo.UserRepository
	blogRepo blogRepo.BlogRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(
	userRepo blogRepo.UserRepository,
	blogRepo blogRepo.BlogRepository,
	logger *slog.Logger,
) blogSvc.UserService {
	return &userService{
		userRepo: userRepo,
		blogRepo: blogRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// FindOrCreate returns the user behind a verified identity
func (s *userService) FindOrCreate(ctx context.Context, identity models.Identity) (*models.User, error) {
	if err := validateIdentity(&identity); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	u, err := s.userRepo.GetByFirebaseID(ctx, identity.ProviderID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	u = &models.User{
		FirebaseID: identity.ProviderID,
		Email:      strings.ToLower(strings.TrimSpace(identity.Email)),
		Name:       DisplayName(identity),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if pic := strings.TrimSpace(identity.Picture); pic != "" {
		u.Avatar = &pic
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// A concurrent first request registered the same subject
		if errors.Is(err, domain.ErrConflict) {
			if existing, getErr := s.userRepo.GetByFirebaseID(ctx, identity.ProviderID); getErr == nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.logger.Info("user registered",
		"id", u.ID,
		"email", u.Email,
	)
	return u, nil
}

// GetProfile returns a user with blog and comment counts
func (s *userService) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, id)
}

// ListUserBlogs returns one page of a user's blogs
func (s *userService) ListUserBlogs(ctx context.Context, viewerID, userID string, page, limit int) (*models.Page, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	page, limit = config.ClampPage(page, limit)
	filter := models.ListFilter{
		AuthorID:      userID,
		IncludeDrafts: viewerID == userID,
		Offset:        (page - 1) * limit,
		Limit:         limit,
	}

	blogs, total, err := s.blogRepo.List(ctx, filter, viewerID)
	if err != nil {
		return nil, err
	}
	if err := summarize(ctx, blogs); err != nil {
		return nil, err
	}
	return models.NewPage(blogs, total, limit), nil
}

// DisplayName picks the name shown for a new user: the provider's display
// name, or the local part of the email address.
func DisplayName(identity models.Identity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	email := strings.TrimSpace(identity.Email)
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func validateIdentity(identity *models.Identity) error {
	return validation.ValidateStruct(identity,
		validation.Field(&identity.ProviderID, validation.Required),
		validation.Field(&identity.Email, validation.Required, is.EmailFormat),
	)
}
