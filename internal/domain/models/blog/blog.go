package blog

import (
	"time"
)

// Author is the public view of a user attached to blogs and comments.
type Author struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Avatar *string `json:"avatar"`
}

// Counts carries aggregate counts in the "_count" shape the web client reads.
type Counts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

type Blog struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Slug       string    `json:"slug" db:"slug"`
	Content    string    `json:"content" db:"content"` // encoded section document, or legacy text
	Excerpt    *string   `json:"excerpt" db:"excerpt"`
	CoverImage *string   `json:"coverImage" db:"cover_image"`
	Published  bool      `json:"published" db:"published"`
	Views      int       `json:"views" db:"views"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	Author     *Author   `json:"author,omitempty"`
	Counts     Counts    `json:"_count"`
	IsLiked    bool      `json:"isLiked"`
	Summary    string    `json:"summary"` // excerpt, or display text derived from content
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// OwnedBy reports whether userID wrote the blog.
func (b *Blog) OwnedBy(userID string) bool {
	return userID != "" && b.AuthorID == userID
}

// VisibleTo reports whether viewerID may read the blog. Drafts are only
// visible to their author.
func (b *Blog) VisibleTo(viewerID string) bool {
	return b.Published || b.OwnedBy(viewerID)
}

// Page is one page of a blog listing.
type Page struct {
	Blogs []Blog `json:"blogs"`
	Total int    `json:"total"`
	Pages int    `json:"pages"`
}

// NewPage computes the page count for total rows at limit per page.
func NewPage(blogs []Blog, total, limit int) *Page {
	if blogs == nil {
		blogs = []Blog{}
	}
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Page{Blogs: blogs, Total: total, Pages: pages}
}

// ListFilter selects blogs for a listing. Zero values mean "no filter".
type ListFilter struct {
	AuthorID    string
	AuthorEmail string
	// IncludeDrafts lists unpublished blogs too; only set when the viewer
	// is the filtered author.
	IncludeDrafts bool
	Offset        int
	Limit         int
}
