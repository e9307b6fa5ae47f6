package postgres

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"inkpost/internal/domain"
	"inkpost/internal/domain/models/blog"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("dev_")
	assert.Equal(t, "dev_users", tables.Users)
	assert.Equal(t, "dev_blogs", tables.Blogs)
	assert.Equal(t, "dev_comments", tables.Comments)
	assert.Equal(t, "dev_likes", tables.Likes)
}

func TestSchemaStatements(t *testing.T) {
	stmts := SchemaStatements(NewTableNames("test_"))
	assert.Len(t, stmts, len(schema))
	for _, s := range stmts {
		assert.NotContains(t, s, "%!", "unfilled format verb")
		assert.Contains(t, s, "IF NOT EXISTS")
	}
	assert.Contains(t, stmts[1], "REFERENCES test_users(id)")
	assert.Contains(t, stmts[len(stmts)-1], "UNIQUE (user_id, blog_id)")
}

func TestDropOrder(t *testing.T) {
	assert.Equal(t, []string{"x_likes", "x_comments", "x_blogs", "x_users"}, NewTableNames("x_").dropOrder())
}

func TestListWhere(t *testing.T) {
	tests := []struct {
		name     string
		filter   blog.ListFilter
		first    int
		want     string
		wantArgs []interface{}
	}{
		{
			name:     "published only",
			filter:   blog.ListFilter{},
			first:    1,
			want:     " WHERE b.published = TRUE",
			wantArgs: []interface{}{},
		},
		{
			name:     "author drafts by id",
			filter:   blog.ListFilter{AuthorID: "u1", IncludeDrafts: true},
			first:    2,
			want:     " WHERE b.author_id::text = $2",
			wantArgs: []interface{}{"u1"},
		},
		{
			name:     "published by email",
			filter:   blog.ListFilter{AuthorEmail: "a@b.c"},
			first:    2,
			want:     " WHERE b.published = TRUE AND u.email = $2",
			wantArgs: []interface{}{"a@b.c"},
		},
		{
			name:     "id and email numbered in order",
			filter:   blog.ListFilter{AuthorID: "u1", AuthorEmail: "a@b.c", IncludeDrafts: true},
			first:    1,
			want:     " WHERE b.author_id::text = $1 AND u.email = $2",
			wantArgs: []interface{}{"u1", "a@b.c"},
		},
		{
			name:     "no conditions",
			filter:   blog.ListFilter{IncludeDrafts: true},
			first:    1,
			want:     "",
			wantArgs: []interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := listWhere(tt.filter, tt.first)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPgErrorHelpers(t *testing.T) {
	assert.True(t, IsPgDuplicateError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsPgDuplicateError(errors.New("x")))
	assert.True(t, IsPgForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsPgNoRowsError(pgx.ErrNoRows))
	assert.Equal(t, "blogs_slug_key", constraintName(&pgconn.PgError{ConstraintName: "blogs_slug_key"}))
}

func TestNotFoundAndValidID(t *testing.T) {
	err := notFound("blog", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, strings.Contains(err.Error(), "blog"))

	assert.True(t, validID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, validID("my-slug"))
}
