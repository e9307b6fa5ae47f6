package blog

import "time"

type User struct {
	ID         string    `json:"id" db:"id"`
	FirebaseID string    `json:"-" db:"firebase_id"`
	Email      string    `json:"email" db:"email"`
	Name       string    `json:"name" db:"name"`
	Avatar     *string   `json:"avatar" db:"avatar"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Identity is a verified caller as reported by the identity provider.
type Identity struct {
	ProviderID string // token subject
	Email      string
	Name       string
	Picture    string
}

// ProfileCounts is the "_count" block of a user profile.
type ProfileCounts struct {
	Blogs    int `json:"blogs"`
	Comments int `json:"comments"`
}

// UserProfile is a user with authored content counts.
type UserProfile struct {
	User
	Counts ProfileCounts `json:"_count"`
}
