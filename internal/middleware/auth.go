package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/util"

	"github.com/rs/zerolog"
)

// Typed key to avoid context collisions.
type contextKey string

const IdentityContextKey = contextKey("identity")

// IdentityFromContext returns the authenticated account ID attached by Auth.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IdentityContextKey).(string)
	return id, ok && id != ""
}

// Auth verifies the bearer token against the given secret and embeds the
// subject claim into the request context. A missing or malformed
// Authorization header is rejected before any verification is attempted.
func Auth(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "No token provided")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, "No token provided")
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Msg("Token verification failed")
				writeAuthError(w, "Invalid token or expired")
				return
			}
			ctx := context.WithValue(r.Context(), IdentityContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"errors": msg})
}
