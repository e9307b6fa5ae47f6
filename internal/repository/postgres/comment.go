package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost/internal/domain/models/blog"
	blogrepo "inkpost/internal/domain/repositories/blog"
)

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) blogrepo.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresCommentRepository) selectComments() string {
	return fmt.Sprintf(`
		SELECT c.id, c.blog_id, c.author_id, c.parent_id, c.content, c.created_at, c.updated_at,
			u.name, u.avatar
		FROM %s c
		JOIN %s u ON u.id = c.author_id
	`, r.tables.Comments, r.tables.Users)
}

func scanComment(row pgx.Row) (*blog.Comment, error) {
	c := blog.Comment{Author: &blog.Author{}}
	err := row.Scan(
		&c.ID,
		&c.BlogID,
		&c.AuthorID,
		&c.ParentID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Author.Name,
		&c.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	c.Author.ID = c.AuthorID
	return &c, nil
}

// Create inserts a comment
func (r *PostgresCommentRepository) Create(ctx context.Context, c *blog.Comment) error {
	if !validID(c.BlogID) {
		return notFound("blog", c.BlogID)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (blog_id, author_id, parent_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Comments)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		c.BlogID,
		c.AuthorID,
		c.ParentID,
		c.Content,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return notFound("blog or parent comment", c.BlogID)
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*blog.Comment, error) {
	if !validID(id) {
		return nil, notFound("comment", id)
	}
	c, err := scanComment(GetExecutor(ctx, r.pool).QueryRow(ctx, r.selectComments()+" WHERE c.id = $1", id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, notFound("comment", id)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// ListByBlog returns every comment of a blog, oldest first
func (r *PostgresCommentRepository) ListByBlog(ctx context.Context, blogID string) ([]blog.Comment, error) {
	if !validID(blogID) {
		return []blog.Comment{}, nil
	}
	rows, err := GetExecutor(ctx, r.pool).Query(ctx,
		r.selectComments()+" WHERE c.blog_id = $1 ORDER BY c.created_at ASC, c.id ASC", blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []blog.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Delete deletes a comment; replies go with it via ON DELETE CASCADE
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound("comment", id)
	}
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Comments), id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("comment", id)
	}
	return nil
}
