package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type contextKey string

const AuthUserKey contextKey = "auth_user"

// AuthenticatedUser is the token holder attached to protected requests
type AuthenticatedUser struct {
	ID    string
	Email string
	Role  string
}

// TokenVerifier is the part of the auth service the middleware needs
type TokenVerifier interface {
	Verify(token string) (*domain.AuthClaims, error)
}

// RequireAuth rejects requests without a usable bearer token with 401 and
// requests whose token fails verification with 403.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			user := &AuthenticatedUser{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), AuthUserKey, user)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserFromContext returns the authenticated user placed by RequireAuth
func UserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthenticatedUser)
	return user, ok
}
