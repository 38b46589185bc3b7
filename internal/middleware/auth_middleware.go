package middleware

import (
	"context"
	"net/http"
	"strings"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/repository"
	"streamhub-server/pkg/jwt"
	"streamhub-server/pkg/response"
)

type contextKey string

const UserKey contextKey = "user"

// AccessTokenCookie is the cookie browsers carry the access token in.
// Non-browser clients use the Authorization header instead.
const AccessTokenCookie = "accessToken"

// AuthMiddleware resolves the caller from the access token cookie or the
// Authorization header and loads the account behind it. Requests without a
// usable token are rejected.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.Unauthorized(w, "missing access token")
				return
			}

			user, err := resolveUser(token, jwtSecret, userRepo)
			if err != nil {
				response.Unauthorized(w, "invalid or expired access token")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware identifies the caller when a valid token is present
// but lets anonymous requests through. Used on public reads that personalize
// their response for signed-in viewers.
func OptionalAuthMiddleware(jwtSecret string, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolveUser(token, jwtSecret, userRepo)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func resolveUser(token, jwtSecret string, userRepo repository.UserRepository) (*domain.User, error) {
	claims, err := jwt.ValidateToken(token, jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

// GetUser returns the authenticated caller, or nil on anonymous requests.
func GetUser(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the authenticated caller's id, or "" when anonymous.
func GetUserID(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return ""
}
