package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"inkpost/internal/cache"
	"inkpost/internal/config"
	"inkpost/internal/content"
	"inkpost/internal/content/render"
	"inkpost/internal/domain"
	models "inkpost/internal/domain/models/blog"
	"inkpost/internal/domain/repositories"
	blogRepo "inkpost/internal/domain/repositories/blog"
	"inkpost/internal/domain/services"
	blogSvc "inkpost/internal/domain/services/blog"
)

// viewCacheCapacity bounds the number of remembered (blog, reader) pairs.
const viewCacheCapacity = 100_000

// Options tunes the caches of the blog service.
type Options struct {
	PopularTTL time.Duration
	ViewWindow time.Duration
}

// blogService implements the BlogService interface
type blogService struct {
	blogRepo   blogRepo.BlogRepository
	likeRepo   blogRepo.LikeRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	renderer   *render.Renderer
	popular    *cache.TTL[[]models.Blog]
	views      *cache.TTL[struct{}]
	logger     *slog.Logger
	now        func() time.Time
}

// NewBlogService creates a new blog service
func NewBlogService(
	blogRepo blogRepo.BlogRepository,
	likeRepo blogRepo.LikeRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	renderer *render.Renderer,
	opts Options,
	logger *slog.Logger,
) blogSvc.BlogService {
	return &blogService{
		blogRepo:   blogRepo,
		likeRepo:   likeRepo,
		txManager:  txManager,
		authorizer: authorizer,
		renderer:   renderer,
		popular:    cache.NewTTL[[]models.Blog](opts.PopularTTL, 64),
		views:      cache.NewTTL[struct{}](opts.ViewWindow, viewCacheCapacity),
		logger:     logger,
		now:        time.Now,
	}
}

// CreateBlog creates a new blog
func (s *blogService) CreateBlog(ctx context.Context, userID string, req *blogSvc.CreateBlogRequest) (*models.Blog, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := strings.TrimSpace(req.Title)
	slug, err := uniqueSlug(ctx, s.blogRepo.SlugExists, Slugify(title), "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &models.Blog{
		Title:      title,
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    optionalText(req.Excerpt),
		CoverImage: optionalText(req.CoverImage),
		Published:  req.Published,
		AuthorID:   userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.blogRepo.Create(ctx, b); err != nil {
		// Lost a race for the slug; one retry with a fresh lookup
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if b.Slug, err = uniqueSlug(ctx, s.blogRepo.SlugExists, Slugify(title), ""); err != nil {
			return nil, err
		}
		if err := s.blogRepo.Create(ctx, b); err != nil {
			return nil, err
		}
	}

	s.popular.Purge()
	s.logger.Info("blog created",
		"id", b.ID,
		"slug", b.Slug,
		"author_id", userID,
		"published", b.Published,
	)

	// Re-read for author and counts
	return s.GetBlog(ctx, userID, b.ID)
}

// ListBlogs returns one page of blogs, newest first
func (s *blogService) ListBlogs(ctx context.Context, viewerID string, req *blogSvc.ListBlogsRequest) (*models.Page, error) {
	page, limit := config.ClampPage(req.Page, req.Limit)
	author := strings.TrimSpace(req.Author)

	filter := models.ListFilter{
		AuthorEmail:   author,
		IncludeDrafts: author != "" && strings.EqualFold(author, req.ViewerEmail),
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

// ListPopular returns the most viewed published blogs. The list is shared
// by every caller and cached for the popular TTL, so IsLiked is never set.
func (s *blogService) ListPopular(ctx context.Context, limit int) ([]models.Blog, error) {
	if limit < 1 {
		limit = config.DefaultPopularLimit
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	blogs, err := s.popular.GetOrLoad(ctx, fmt.Sprintf("popular:%d", limit), func(ctx context.Context) ([]models.Blog, error) {
		blogs, err := s.blogRepo.ListPopular(ctx, limit)
		if err != nil {
			return nil, err
		}
		if err := summarize(ctx, blogs); err != nil {
			return nil, err
		}
		s.logger.Debug("popular blogs loaded", "limit", limit, "count", len(blogs))
		return blogs, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may modify the result; the cached slice must stay intact
	return append([]models.Blog(nil), blogs...), nil
}

// GetBlog retrieves a blog by ID
func (s *blogService) GetBlog(ctx context.Context, viewerID, id string) (*models.Blog, error) {
	b, err := s.authorizer.ReadableBlog(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	b.Summary = Summarize(b)
	return b, nil
}

// GetBlogBySlug retrieves a blog by slug and counts the view
func (s *blogService) GetBlogBySlug(ctx context.Context, viewerID, viewKey, slug string) (*models.Blog, error) {
	b, err := s.readableBySlug(ctx, viewerID, slug)
	if err != nil {
		return nil, err
	}

	if viewKey == "" || s.views.SetIfAbsent(b.ID+"|"+viewKey, struct{}{}) {
		views, err := s.blogRepo.IncrementViews(ctx, b.ID)
		if err != nil {
			// The read still succeeds without the count
			s.logger.Warn("increment views failed", "blog_id", b.ID, "error", err)
		} else {
			b.Views = views
		}
	}

	b.Summary = Summarize(b)
	return b, nil
}

// RenderBlog retrieves a blog by slug and renders its content
func (s *blogService) RenderBlog(ctx context.Context, viewerID, slug string, mode render.Mode) (*blogSvc.RenderedBlog, error) {
	b, err := s.readableBySlug(ctx, viewerID, slug)
	if err != nil {
		return nil, err
	}
	b.Summary = Summarize(b)

	return &blogSvc.RenderedBlog{
		Blog:     b,
		Rendered: s.renderer.RenderStored(b.Content, mode),
	}, nil
}

func (s *blogService) readableBySlug(ctx context.Context, viewerID, slug string) (*models.Blog, error) {
	b, err := s.blogRepo.GetBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}
	if !b.VisibleTo(viewerID) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("blog not found: %s", slug)}
	}
	return b, nil
}

// UpdateBlog updates a blog
func (s *blogService) UpdateBlog(ctx context.Context, userID, id string, req *blogSvc.UpdateBlogRequest) (*models.Blog, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	b, err := s.authorizer.EditableBlog(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != b.Title {
			slug, err := uniqueSlug(ctx, s.blogRepo.SlugExists, Slugify(title), b.ID)
			if err != nil {
				return nil, err
			}
			b.Title = title
			b.Slug = slug
		}
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Excerpt != nil {
		b.Excerpt = optionalText(req.Excerpt)
	}
	if req.CoverImage != nil {
		b.CoverImage = optionalText(req.CoverImage)
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	b.UpdatedAt = s.now()

	if err := s.blogRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.popular.Purge()
	s.logger.Info("blog updated",
		"id", b.ID,
		"slug", b.Slug,
		"author_id", userID,
	)

	b.Summary = Summarize(b)
	return b, nil
}

// DeleteBlog deletes a blog
func (s *blogService) DeleteBlog(ctx context.Context, userID, id string) error {
	if _, err := s.authorizer.EditableBlog(ctx, userID, id); err != nil {
		return err
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.popular.Purge()
	s.logger.Info("blog deleted",
		"id", id,
		"author_id", userID,
	)
	return nil
}

// ToggleLike likes a blog, or removes the like if there is one
func (s *blogService) ToggleLike(ctx context.Context, userID, blogID string) (bool, error) {
	var liked bool
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.authorizer.ReadableBlog(ctx, userID, blogID); err != nil {
			return err
		}

		exists, err := s.likeRepo.Exists(ctx, blogID, userID)
		if err != nil {
			return err
		}
		if exists {
			liked = false
			return s.likeRepo.Delete(ctx, blogID, userID)
		}

		liked = true
		if err := s.likeRepo.Create(ctx, blogID, userID); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Debug("blog like toggled", "blog_id", blogID, "user_id", userID, "liked", liked)
	return liked, nil
}

// Summarize returns the list-view text of a blog: its excerpt when set,
// otherwise the display text derived from its content.
func Summarize(b *models.Blog) string {
	if b.Excerpt != nil {
		if excerpt := strings.TrimSpace(*b.Excerpt); excerpt != "" {
			return excerpt
		}
	}
	return content.SummaryFromStored(b.Content, config.SummaryBudget)
}

// summarize fills Summary for every blog. Decoding is CPU bound, so the
// work is spread over a bounded set of goroutines.
func summarize(ctx context.Context, blogs []models.Blog) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range blogs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			blogs[i].Summary = Summarize(&blogs[i])
			return nil
		})
	}
	return g.Wait()
}

// optionalText trims p and maps blank values to nil
func optionalText(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func validateCreateRequest(req *blogSvc.CreateBlogRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Content,
			validation.Required,
			validation.By(validContent),
		),
		validation.Field(&req.Excerpt, validation.Length(0, config.MaxExcerptLength)),
		validation.Field(&req.CoverImage, validation.Length(0, 2048)),
	)
}

func validateUpdateRequest(req *blogSvc.UpdateBlogRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Content,
			validation.NilOrNotEmpty,
			validation.By(validContent),
		),
		validation.Field(&req.Excerpt, validation.Length(0, config.MaxExcerptLength)),
		validation.Field(&req.CoverImage, validation.Length(0, 2048)),
	)
}

// notBlank rejects values that are only whitespace
func notBlank(value interface{}) error {
	var v string
	switch t := value.(type) {
	case string:
		v = t
	case *string:
		if t == nil {
			return nil
		}
		v = *t
	}
	if strings.TrimSpace(v) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// validContent checks structured content on the way in. Legacy text is
// stored as given.
func validContent(value interface{}) error {
	var stored string
	switch t := value.(type) {
	case string:
		stored = t
	case *string:
		if t == nil {
			return nil
		}
		stored = *t
	}
	decoded := content.Decode(stored)
	if !decoded.IsStructured() {
		return nil
	}
	if len(decoded.Document) == 0 {
		return errors.New("must contain at least one section")
	}
	return content.Validate(decoded.Document)
}
