// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/voteapp-kr/server/auth"
)

type ctxKey int

const userIDKey ctxKey = 0

// Auth guards routes that require a verified identity
type Auth struct {
	secret []byte
}

func NewAuth(jwtSecret string) *Auth {
	return &Auth{secret: []byte(jwtSecret)}
}

// RequireUser verifies the Authorization bearer token and stores the
// authenticated user ID in the request context. Requests without a
// valid token are rejected before reaching the handler.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization header must be a bearer token")
			return
		}

		userID, err := auth.ParseToken(tokenString, a.secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a context carrying the authenticated user ID.
// Exported for handler tests that bypass RequireUser.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user ID, or "" when the request
// did not pass through RequireUser.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
