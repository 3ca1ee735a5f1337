package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// sendJSON writes a JSON response
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendServiceError translates service/storage sentinel errors into
// protocol responses. Unknown errors become a generic 500; internal
// details are logged, never sent to the caller.
func sendServiceError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		sendError(logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		sendError(logger, w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidSecretPhrase):
		sendError(logger, w, "invalid secret phrase", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		sendError(logger, w, "invalid or expired token", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidRating):
		sendError(logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotPostAuthor):
		sendError(logger, w, err.Error(), http.StatusForbidden)
	case errors.Is(err, storage.ErrUserNotFound):
		sendError(logger, w, "user not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrPostNotFound):
		sendError(logger, w, "post not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrTagNotFound):
		sendError(logger, w, "tag not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrUserAlreadyExists):
		sendError(logger, w, "email or username already registered", http.StatusConflict)
	case errors.Is(err, storage.ErrTagAlreadyExists):
		sendError(logger, w, "tag already exists", http.StatusConflict)
	default:
		logger.ErrorContext(ctx, "internal error", slog.Any("error", err))
		sendError(logger, w, "internal server error", http.StatusInternalServerError)
	}
}
