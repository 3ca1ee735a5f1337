package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/handlers"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
)

// AuthMiddleware requires a valid bearer access token and puts the
// authenticated user ID into the request context.
func AuthMiddleware(logger *slog.Logger, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := bearerSubject(logger, tokens, r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware extracts the user ID when a valid bearer token
// is present but lets unauthenticated requests through. Used on public
// read endpoints that enrich responses for authenticated callers.
func OptionalAuthMiddleware(logger *slog.Logger, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := bearerSubject(logger, tokens, r); ok {
				ctx := context.WithValue(r.Context(), handlers.UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerSubject validates the Authorization header and returns the
// access token subject.
func bearerSubject(logger *slog.Logger, tokens *token.Service, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		logger.Warn("invalid Authorization header format")
		return "", false
	}

	userID, err := tokens.VerifyAccessToken(parts[1])
	if err != nil {
		logger.Warn("invalid access token", "error", err)
		return "", false
	}

	logger.Debug("user authenticated", "user_id", userID)
	return userID, true
}
