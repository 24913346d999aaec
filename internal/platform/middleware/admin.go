package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"registrar/pkg/requestcontext"
)

// SessionValidator validates a bearer token and returns the admin username it
// belongs to. Implementations must reject revoked and expired sessions.
type SessionValidator interface {
	Validate(ctx context.Context, tokenString string) (username string, err error)
}

// RequireAdmin gates moderation endpoints behind a server-validated admin session.
// The token is expected as "Authorization: Bearer <jwt>".
func RequireAdmin(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "admin session required")
				return
			}

			username, err := validator.Validate(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "admin session rejected",
					"error", err.Error(),
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "invalid or expired admin session")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAdminUser(ctx, username)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
