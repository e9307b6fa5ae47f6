package blog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkpost/internal/config"
	"inkpost/internal/domain"
	models "inkpost/internal/domain/models/blog"
	blogRepo "inkpost/internal/domain/repositories/blog"
	"inkpost/internal/domain/services"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/markup"
)

// commentService implements the CommentService interface
type commentService struct {
	commentRepo blogRepo.CommentRepository
	authorizer  services.ResourceAuthorizer
	logger      *slog.Logger
	now         func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo blogRepo.CommentRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) blogSvc.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		authorizer:  authorizer,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateComment creates a comment or a reply
func (s *commentService) CreateComment(ctx context.Context, userID string, req *blogSvc.CreateCommentRequest) (*models.Comment, error) {
	if err := validateCommentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.authorizer.ReadableBlog(ctx, userID, req.BlogID); err != nil {
		return nil, err
	}

	var parentID *string
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BlogID != req.BlogID {
			return nil, fmt.Errorf("%w: parent comment belongs to another blog", domain.ErrValidation)
		}
		if parent.IsReply() {
			return nil, fmt.Errorf("%w: replies cannot be answered", domain.ErrValidation)
		}
		parentID = &parent.ID
	}

	now := s.now()
	c := &models.Comment{
		BlogID:    req.BlogID,
		AuthorID:  userID,
		ParentID:  parentID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", c.ID,
		"blog_id", c.BlogID,
		"author_id", userID,
		"reply", c.IsReply(),
	)

	// Re-read for the author
	created, err := s.commentRepo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	created.HTML = string(markup.RenderMarkdown(created.Content))
	return created, nil
}

// ListComments returns a blog's comments as a thread
func (s *commentService) ListComments(ctx context.Context, viewerID, blogID string) ([]models.Comment, error) {
	if _, err := s.authorizer.ReadableBlog(ctx, viewerID, blogID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return Thread(comments), nil
}

// DeleteComment deletes a comment with its replies
func (s *commentService) DeleteComment(ctx context.Context, userID, id string) error {
	c, err := s.authorizer.DeletableComment(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		"id", id,
		"blog_id", c.BlogID,
		"author_id", userID,
	)
	return nil
}

// Thread arranges comments given oldest first into top-level comments
// newest first, each carrying its replies oldest first. Replies to replies
// and replies whose parent is missing are dropped. HTML is rendered for
// every returned comment.
func Thread(comments []models.Comment) []models.Comment {
	top := make([]models.Comment, 0, len(comments))
	index := make(map[string]int, len(comments))
	for _, c := range comments {
		if c.IsReply() {
			continue
		}
		c.HTML = string(markup.RenderMarkdown(c.Content))
		c.Replies = nil
		index[c.ID] = len(top)
		top = append(top, c)
	}

	for _, c := range comments {
		if !c.IsReply() {
			continue
		}
		i, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		c.HTML = string(markup.RenderMarkdown(c.Content))
		c.Replies = nil
		top[i].Replies = append(top[i].Replies, c)
	}

	slices.Reverse(top)
	return top
}

func validateCommentRequest(req *blogSvc.CreateCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BlogID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxCommentLength),
			validation.By(notBlank),
		),
	)
}
