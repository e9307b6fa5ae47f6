package blog

import (
	"context"
	"fmt"

	"inkpost/internal/domain"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/editor"
)

// DraftStore persists editor sessions as blogs.
type DraftStore struct {
	blogs blogSvc.BlogService
}

// NewDraftStore creates a draft store on top of the blog service
func NewDraftStore(blogs blogSvc.BlogService) *DraftStore {
	return &DraftStore{blogs: blogs}
}

var _ editor.Store = (*DraftStore)(nil)

// SaveDraft creates the blog on first save and updates it afterwards
func (d *DraftStore) SaveDraft(ctx context.Context, authorID string, snap editor.Snapshot) (string, error) {
	if snap.BlogID == "" {
		b, err := d.blogs.CreateBlog(ctx, authorID, &blogSvc.CreateBlogRequest{
			Title:      snap.Title,
			Content:    snap.Content,
			Excerpt:    &snap.Excerpt,
			CoverImage: &snap.CoverImage,
			Published:  snap.Published,
		})
		if err != nil {
			return "", err
		}
		return b.ID, nil
	}

	b, err := d.blogs.UpdateBlog(ctx, authorID, snap.BlogID, &blogSvc.UpdateBlogRequest{
		Title:      &snap.Title,
		Content:    &snap.Content,
		Excerpt:    &snap.Excerpt,
		CoverImage: &snap.CoverImage,
		Published:  &snap.Published,
	})
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// LoadDraft loads a blog its author wants to edit
func (d *DraftStore) LoadDraft(ctx context.Context, authorID, blogID string) (editor.Snapshot, error) {
	b, err := d.blogs.GetBlog(ctx, authorID, blogID)
	if err != nil {
		return editor.Snapshot{}, err
	}
	if !b.OwnedBy(authorID) {
		return editor.Snapshot{}, &domain.ForbiddenError{Message: fmt.Sprintf("access denied to blog %s", blogID)}
	}

	snap := editor.Snapshot{
		BlogID:    b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Published: b.Published,
	}
	if b.Excerpt != nil {
		snap.Excerpt = *b.Excerpt
	}
	if b.CoverImage != nil {
		snap.CoverImage = *b.CoverImage
	}
	return snap, nil
}
