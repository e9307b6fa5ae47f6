package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"inkpost/internal/auth"
	"inkpost/internal/cache"
	"inkpost/internal/domain"
	"inkpost/internal/domain/models/blog"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/httputil"
)

// userCacheTTL bounds how long a token subject maps to a local user
// without asking the database again.
const userCacheTTL = 5 * time.Minute

// Authenticator resolves Bearer tokens to local users.
type Authenticator struct {
	verifier auth.TokenVerifier
	users    blogSvc.UserService
	cache    *cache.TTL[*blog.User]
	logger   *slog.Logger
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(verifier auth.TokenVerifier, users blogSvc.UserService, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		users:    users,
		cache:    cache.NewTTL[*blog.User](userCacheTTL, 10_000),
		logger:   logger,
	}
}

// Middleware puts the caller's user id and email in the request context.
// Requests without a token continue anonymously; a token that fails
// verification is rejected with 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.verifier.VerifyToken(token)
		if err != nil {
			httputil.RespondError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := a.cache.GetOrLoad(r.Context(), claims.Subject, func(ctx context.Context) (*blog.User, error) {
			return a.users.FindOrCreate(ctx, claims.Identity())
		})
		if err != nil {
			a.logger.Warn("resolve user failed", "subject", claims.Subject, "error", err)
			handleAuthError(w, r, err)
			return
		}

		next.ServeHTTP(w, httputil.WithUser(r, user.ID, user.Email))
	})
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if httputil.GetUserID(r) == "" {
			httputil.RespondError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// handleAuthError answers a failed user lookup. Identities the user
// service rejects are unauthorized; an email already registered to another
// account is a conflict.
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, r, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
