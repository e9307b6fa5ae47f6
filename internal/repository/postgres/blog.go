package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost/internal/domain"
	"inkpost/internal/domain/models/blog"
	blogrepo "inkpost/internal/domain/repositories/blog"
)

// PostgresBlogRepository implements the BlogRepository interface
type PostgresBlogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(config *RepositoryConfig) blogrepo.BlogRepository {
	return &PostgresBlogRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// selectBlogs returns the shared projection: blog columns, author, counts
// and whether the viewer (parameter $1, "" for anonymous) liked it.
func (r *PostgresBlogRepository) selectBlogs() string {
	return fmt.Sprintf(`
		SELECT b.id, b.title, b.slug, b.content, b.excerpt, b.cover_image, b.published,
			b.views, b.author_id, b.created_at, b.updated_at,
			u.name, u.email, u.avatar,
			(SELECT COUNT(*) FROM %[3]s l WHERE l.blog_id = b.id),
			(SELECT COUNT(*) FROM %[4]s c WHERE c.blog_id = b.id),
			EXISTS (SELECT 1 FROM %[3]s l WHERE l.blog_id = b.id AND l.user_id::text = $1)
		FROM %[1]s b
		JOIN %[2]s u ON u.id = b.author_id
	`, r.tables.Blogs, r.tables.Users, r.tables.Likes, r.tables.Comments)
}

func scanBlog(row pgx.Row) (*blog.Blog, error) {
	b := blog.Blog{Author: &blog.Author{}}
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Slug,
		&b.Content,
		&b.Excerpt,
		&b.CoverImage,
		&b.Published,
		&b.Views,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.Author.Name,
		&b.Author.Email,
		&b.Author.Avatar,
		&b.Counts.Likes,
		&b.Counts.Comments,
		&b.IsLiked,
	)
	if err != nil {
		return nil, err
	}
	b.Author.ID = b.AuthorID
	return &b, nil
}

// Create inserts a new blog
func (r *PostgresBlogRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, slug, content, excerpt, cover_image, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, views, created_at, updated_at
	`, r.tables.Blogs)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		b.Title,
		b.Slug,
		b.Content,
		b.Excerpt,
		b.CoverImage,
		b.Published,
		b.AuthorID,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.Views, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("blog slug '%s' already exists", b.Slug),
				ResourceType: "blog",
				ResourceID:   b.Slug,
			}
		}
		if IsPgForeignKeyError(err) {
			return notFound("user", b.AuthorID)
		}
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// GetByID retrieves a blog by ID
func (r *PostgresBlogRepository) GetByID(ctx context.Context, id, viewerID string) (*blog.Blog, error) {
	if !validID(id) {
		return nil, notFound("blog", id)
	}
	query := r.selectBlogs() + " WHERE b.id = $2"

	b, err := scanBlog(GetExecutor(ctx, r.pool).QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, notFound("blog", id)
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

// GetBySlug retrieves a blog by slug
func (r *PostgresBlogRepository) GetBySlug(ctx context.Context, slug, viewerID string) (*blog.Blog, error) {
	query := r.selectBlogs() + " WHERE b.slug = $2"

	b, err := scanBlog(GetExecutor(ctx, r.pool).QueryRow(ctx, query, viewerID, slug))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, notFound("blog", slug)
		}
		return nil, fmt.Errorf("get blog by slug: %w", err)
	}
	return b, nil
}

// Update writes the editable columns of a blog
func (r *PostgresBlogRepository) Update(ctx context.Context, b *blog.Blog) error {
	if !validID(b.ID) {
		return notFound("blog", b.ID)
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, content = $3, excerpt = $4, cover_image = $5,
			published = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.Blogs)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		b.Title,
		b.Slug,
		b.Content,
		b.Excerpt,
		b.CoverImage,
		b.Published,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("blog slug '%s' already exists", b.Slug),
				ResourceType: "blog",
				ResourceID:   b.Slug,
			}
		}
		return fmt.Errorf("update blog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("blog", b.ID)
	}
	return nil
}

// Delete deletes a blog; comments and likes go with it via ON DELETE CASCADE
func (r *PostgresBlogRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound("blog", id)
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Blogs)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("blog", id)
	}
	return nil
}

// listWhere builds the WHERE clause for a filter with placeholders
// numbered from first.
func listWhere(filter blog.ListFilter, first int) (string, []interface{}) {
	var conds []string
	args := []interface{}{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", first+len(args)-1)
	}

	if !filter.IncludeDrafts {
		conds = append(conds, "b.published = TRUE")
	}
	if filter.AuthorID != "" {
		conds = append(conds, "b.author_id::text = "+next(filter.AuthorID))
	}
	if filter.AuthorEmail != "" {
		conds = append(conds, "u.email = "+next(filter.AuthorEmail))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of blogs, newest first, and the total match count
func (r *PostgresBlogRepository) List(ctx context.Context, filter blog.ListFilter, viewerID string) ([]blog.Blog, int, error) {
	executor := GetExecutor(ctx, r.pool)

	countWhere, countArgs := listWhere(filter, 1)
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s b JOIN %s u ON u.id = b.author_id
	`, r.tables.Blogs, r.tables.Users) + countWhere

	var total int
	if err := executor.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	// $1 is the viewer id consumed by selectBlogs
	where, args := listWhere(filter, 2)
	query := r.selectBlogs() + where + fmt.Sprintf(
		" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", len(args)+2, len(args)+3)
	queryArgs := append([]interface{}{viewerID}, args...)
	queryArgs = append(queryArgs, filter.Limit, filter.Offset)

	blogs, err := r.query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, total, nil
}

// ListPopular returns published blogs ordered by views, then newest first
func (r *PostgresBlogRepository) ListPopular(ctx context.Context, limit int) ([]blog.Blog, error) {
	query := r.selectBlogs() + `
		WHERE b.published = TRUE
		ORDER BY b.views DESC, b.created_at DESC
		LIMIT $2
	`
	blogs, err := r.query(ctx, query, "", limit)
	if err != nil {
		return nil, fmt.Errorf("list popular blogs: %w", err)
	}
	return blogs, nil
}

func (r *PostgresBlogRepository) query(ctx context.Context, query string, args ...interface{}) ([]blog.Blog, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []blog.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blogs, nil
}

// IncrementViews adds one view and returns the new count
func (r *PostgresBlogRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	if !validID(id) {
		return 0, notFound("blog", id)
	}
	query := fmt.Sprintf(`UPDATE %s SET views = views + 1 WHERE id = $1 RETURNING views`, r.tables.Blogs)

	var views int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&views); err != nil {
		if IsPgNoRowsError(err) {
			return 0, notFound("blog", id)
		}
		return 0, fmt.Errorf("increment blog views: %w", err)
	}
	return views, nil
}

// SlugExists reports whether a blog other than excludeID uses slug
func (r *PostgresBlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND id::text <> $2)`, r.tables.Blogs)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}
