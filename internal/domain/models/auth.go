package models

import (
	"github.com/golang-jwt/jwt/v5"

	"inkpost/internal/domain/models/blog"
)

// FirebaseClaims represents the claims of a Firebase Auth ID token.
// See: https://firebase.google.com/docs/auth/admin/verify-id-tokens
type FirebaseClaims struct {
	jwt.RegisteredClaims        // sub, iss, aud, exp, iat
	Email                string `json:"email"`
	EmailVerified        bool   `json:"email_verified"`
	Name                 string `json:"name"`
	Picture              string `json:"picture"`
	AuthTime             int64  `json:"auth_time"`
	Firebase             struct {
		SignInProvider string `json:"sign_in_provider"` // "password", "google.com", "anonymous", ...
	} `json:"firebase"`
}

// GetUserID returns the identity provider's user id (the subject claim).
func (c *FirebaseClaims) GetUserID() string {
	return c.Subject
}

// Identity converts the claims into the identity used to find or register
// the local user.
func (c *FirebaseClaims) Identity() blog.Identity {
	return blog.Identity{
		ProviderID: c.Subject,
		Email:      c.Email,
		Name:       c.Name,
		Picture:    c.Picture,
	}
}
