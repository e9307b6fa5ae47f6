package auth

import "inkpost/internal/domain/models"

// TokenVerifier defines the interface for ID token verification.
// Middleware depends on this rather than on a concrete provider.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns its claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, has an
	// invalid signature or was issued for another project.
	VerifyToken(tokenString string) (*models.FirebaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
