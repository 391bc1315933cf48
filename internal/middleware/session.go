// Package middleware provides HTTP middlewares for session authentication,
// rate limiting and request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/SmileCare/internal/auth"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionAuth enforces bearer-token authentication against the portal's
// single session.
//
// The token must be valid for secret and its uid claim must name the user
// returned by current, so a token issued before logout (or for another
// user) stops working as soon as the session changes. On success the user
// id is stored in the request context.
func SessionAuth(secret string, current func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "no token", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			if claims.UserID != current() {
				http.Error(w, "session ended", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
