package blog

import "time"

type Comment struct {
	ID        string    `json:"id" db:"id"`
	BlogID    string    `json:"blogId" db:"blog_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	ParentID  *string   `json:"parentId" db:"parent_id"` // NULL = top-level
	Content   string    `json:"content" db:"content"`    // markdown source
	HTML      string    `json:"html"`                    // rendered, not stored
	Author    *Author   `json:"author,omitempty"`
	Replies   []Comment `json:"replies,omitempty"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
