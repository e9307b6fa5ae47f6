package blog

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxSlugAttempts bounds the numbered suffixes tried before falling back
// to a random one.
const maxSlugAttempts = 20

// Slugify lowercases title and collapses every run of characters that are
// not letters or digits into a single '-'. The result never starts or ends
// with '-'. A title with no usable characters yields "post".
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "post"
	}
	return b.String()
}

// slugExists is the lookup uniqueSlug needs from the repository.
type slugExists func(ctx context.Context, slug, excludeID string) (bool, error)

// uniqueSlug returns base, or base-2, base-3, ... for the first slug no
// blog other than excludeID uses.
func uniqueSlug(ctx context.Context, exists slugExists, base, excludeID string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
