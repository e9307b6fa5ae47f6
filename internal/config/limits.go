package config

const (
	// MaxTitleLength is the maximum length for blog titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxTitleLength = 255

	// MaxExcerptLength caps hand-written excerpts. Derived summaries are
	// much shorter (SummaryBudget).
	MaxExcerptLength = 500

	// SummaryBudget is the character budget for list-view previews.
	SummaryBudget = 200

	// MaxCommentLength is the maximum length of a comment body.
	MaxCommentLength = 5000

	// MaxUploadBytes is the largest accepted image upload (5 MiB).
	MaxUploadBytes = 5 << 20

	// DefaultPageSize and MaxPageSize bound list endpoints.
	DefaultPageSize = 10
	MaxPageSize     = 50

	// DefaultPopularLimit is how many blogs the popular list shows when the
	// caller does not ask for a count.
	DefaultPopularLimit = 6
)

// ClampPage normalizes 1-based page and limit query values.
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
