package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost/internal/domain"
	"inkpost/internal/domain/models/blog"
	blogrepo "inkpost/internal/domain/repositories/blog"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) blogrepo.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresUserRepository) selectUser(where string) string {
	return fmt.Sprintf(`
		SELECT id, firebase_id, email, name, avatar, created_at, updated_at
		FROM %s
		WHERE %s
	`, r.tables.Users, where)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where, key string) (*blog.User, error) {
	var u blog.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, r.selectUser(where), key).Scan(
		&u.ID,
		&u.FirebaseID,
		&u.Email,
		&u.Name,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, notFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*blog.User, error) {
	if !validID(id) {
		return nil, notFound("user", id)
	}
	return r.getOne(ctx, "id = $1", id)
}

// GetByFirebaseID retrieves a user by identity provider subject
func (r *PostgresUserRepository) GetByFirebaseID(ctx context.Context, firebaseID string) (*blog.User, error) {
	return r.getOne(ctx, "firebase_id = $1", firebaseID)
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *blog.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (firebase_id, email, name, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Users)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		u.FirebaseID,
		u.Email,
		u.Name,
		u.Avatar,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			field := "account"
			if strings.Contains(constraintName(err), "email") {
				field = "email"
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user %s '%s' already exists", field, u.Email),
				ResourceType: "user",
				ResourceID:   u.FirebaseID,
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	r.logger.Debug("user created", "user_id", u.ID, "email", u.Email)
	return nil
}

// GetProfile returns a user with blog and comment counts
func (r *PostgresUserRepository) GetProfile(ctx context.Context, id string) (*blog.UserProfile, error) {
	if !validID(id) {
		return nil, notFound("user", id)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.firebase_id, u.email, u.name, u.avatar, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM %[2]s b WHERE b.author_id = u.id),
			(SELECT COUNT(*) FROM %[3]s c WHERE c.author_id = u.id)
		FROM %[1]s u
		WHERE u.id = $1
	`, r.tables.Users, r.tables.Blogs, r.tables.Comments)

	var p blog.UserProfile
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.FirebaseID,
		&p.Email,
		&p.Name,
		&p.Avatar,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Counts.Blogs,
		&p.Counts.Comments,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, notFound("user", id)
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &p, nil
}
