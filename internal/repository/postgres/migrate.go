package postgres

import (
	"context"
	"fmt"
	"strings"
)

// schema is applied on boot. Each statement is idempotent. %[1]s..%[4]s
// are the users, blogs, comments and likes table names.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS %[1]s (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		firebase_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		avatar TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS %[2]s (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(255) NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL DEFAULT '',
		excerpt TEXT,
		cover_image TEXT,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		views INTEGER NOT NULL DEFAULT 0,
		author_id UUID NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_%[2]s_author ON %[2]s(author_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_%[2]s_published ON %[2]s(published, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_%[2]s_popular ON %[2]s(views DESC, created_at DESC) WHERE published`,
	`CREATE TABLE IF NOT EXISTS %[3]s (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		blog_id UUID NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
		parent_id UUID REFERENCES %[3]s(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_%[3]s_blog ON %[3]s(blog_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS %[4]s (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		blog_id UUID NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT %[4]s_user_blog_key UNIQUE (user_id, blog_id)
	)`,
}

// SchemaStatements returns the DDL for the given tables in apply order.
func SchemaStatements(tables *TableNames) []string {
	stmts := make([]string, len(schema))
	for i, s := range schema {
		stmts[i] = fmt.Sprintf(s, tables.Users, tables.Blogs, tables.Comments, tables.Likes)
	}
	return stmts
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, config *RepositoryConfig) error {
	executor := GetExecutor(ctx, config.Pool)
	for _, stmt := range SchemaStatements(config.Tables) {
		if _, err := executor.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema %q: %w", firstLine(stmt), err)
		}
	}
	config.Logger.Info("database schema ready", "users", config.Tables.Users, "blogs", config.Tables.Blogs)
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// dropOrder lists tables children first so foreign keys never block a drop.
func (t *TableNames) dropOrder() []string {
	return []string{t.Likes, t.Comments, t.Blogs, t.Users}
}

// DropAll drops every table of the configured prefix.
func DropAll(ctx context.Context, config *RepositoryConfig) error {
	executor := GetExecutor(ctx, config.Pool)
	for _, table := range config.Tables.dropOrder() {
		if _, err := executor.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		config.Logger.Info("table dropped", "table", table)
	}
	return nil
}

// ClearData deletes every row but keeps the schema.
func ClearData(ctx context.Context, config *RepositoryConfig) error {
	t := config.Tables
	query := fmt.Sprintf("TRUNCATE %s, %s, %s, %s", t.Likes, t.Comments, t.Blogs, t.Users)
	if _, err := GetExecutor(ctx, config.Pool).Exec(ctx, query); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
