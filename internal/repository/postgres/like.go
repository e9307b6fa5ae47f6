package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost/internal/domain"
	blogrepo "inkpost/internal/domain/repositories/blog"
)

// PostgresLikeRepository implements the LikeRepository interface
type PostgresLikeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(config *RepositoryConfig) blogrepo.LikeRepository {
	return &PostgresLikeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Exists reports whether userID likes blogID
func (r *PostgresLikeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	if !validID(blogID) || !validID(userID) {
		return false, nil
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE blog_id = $1 AND user_id = $2)`, r.tables.Likes)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, blogID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

// Create records a like
func (r *PostgresLikeRepository) Create(ctx context.Context, blogID, userID string) error {
	if !validID(blogID) {
		return notFound("blog", blogID)
	}
	query := fmt.Sprintf(`INSERT INTO %s (blog_id, user_id) VALUES ($1, $2)`, r.tables.Likes)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, blogID, userID); err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "blog already liked",
				ResourceType: "like",
				ResourceID:   blogID,
			}
		}
		if IsPgForeignKeyError(err) {
			return notFound("blog", blogID)
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// Delete removes a like
func (r *PostgresLikeRepository) Delete(ctx context.Context, blogID, userID string) error {
	if !validID(blogID) || !validID(userID) {
		return notFound("like", blogID)
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE blog_id = $1 AND user_id = $2`, r.tables.Likes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, blogID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("like", blogID)
	}
	return nil
}
