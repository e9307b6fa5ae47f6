package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"inkpost/internal/domain"
	"inkpost/internal/domain/models"
)

const issuerPrefix = "https://securetoken.google.com/"

// FirebaseVerifier implements TokenVerifier for Firebase Auth ID tokens
// using Google's published signing keys.
type FirebaseVerifier struct {
	projectID string
	keyfunc   jwt.Keyfunc
	cancel    context.CancelFunc
	leeway    time.Duration
	logger    *slog.Logger
}

// NewFirebaseVerifier creates a verifier that fetches public keys from the
// JWKS endpoint. keyfunc v3 caches the keys and refreshes them in the
// background until Close.
func NewFirebaseVerifier(projectID, jwksURL string, logger *slog.Logger) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id cannot be empty")
	}
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("token verifier initialized", "project_id", projectID, "jwks_url", jwksURL)

	v := NewFirebaseVerifierWithKeyfunc(projectID, jwks.Keyfunc, logger)
	v.cancel = cancel
	return v, nil
}

// NewFirebaseVerifierWithKeyfunc creates a verifier with a caller-supplied
// key lookup.
func NewFirebaseVerifierWithKeyfunc(projectID string, kf jwt.Keyfunc, logger *slog.Logger) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID: projectID,
		keyfunc:   kf,
		leeway:    30 * time.Second,
		logger:    logger,
	}
}

// VerifyToken validates an ID token and extracts its claims.
func (v *FirebaseVerifier) VerifyToken(tokenString string) (*models.FirebaseClaims, error) {
	// Pinning the method prevents algorithm confusion attacks
	token, err := jwt.ParseWithClaims(tokenString, &models.FirebaseClaims{}, v.keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		v.logger.Debug("token rejected", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.FirebaseClaims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// Firebase requires a non-empty subject of at most 128 characters
	if claims.Subject == "" || len(claims.Subject) > 128 {
		v.logger.Debug("token has invalid subject")
		return nil, domain.ErrUnauthorized
	}

	// Anonymous sign-ins carry no email and cannot own content
	if claims.Firebase.SignInProvider == "anonymous" || claims.Email == "" {
		v.logger.Debug("token has no usable identity",
			"user_id", claims.Subject,
			"provider", claims.Firebase.SignInProvider)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close stops the background key refresh.
func (v *FirebaseVerifier) Close() error {
	if v.cancel != nil {
		v.cancel()
	}
	v.logger.Info("token verifier closed")
	return nil
}
