package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"pocketbook/internal/auth"
	"pocketbook/internal/http/respond"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated user id set by Auth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns ctx carrying the authenticated user id. Auth sets it on
// every verified request; handler tests inject identities through it.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Auth rejects requests without a valid bearer token and stores the token's
// user id on the request context.
func Auth(tokens *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
