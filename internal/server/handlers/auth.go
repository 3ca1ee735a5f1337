package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// AuthHandler handles authentication and password recovery requests
type AuthHandler struct {
	logger *slog.Logger
	auth   *service.AuthService
}

// NewAuthHandler creates a new handler for auth endpoints
func NewAuthHandler(logger *slog.Logger, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := api.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		UserID:      result.UserID,
		ExpiresIn:   result.ExpiresIn,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// RequestPasswordReset handles POST /api/v1/auth/request-password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode reset request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Both fields are required before any lookup happens
	if req.Email == "" || req.RecoveryPhrase == "" {
		sendError(h.logger, w, "email and password_reminder are required", http.StatusBadRequest)
		return
	}

	result, err := h.auth.RequestPasswordReset(ctx, req.Email, req.RecoveryPhrase)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := api.ResetRequestResponse{
		ResetToken: result.Token,
		Message:    result.Message,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode reset confirmation", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		sendError(h.logger, w, "token and new_password are required", http.StatusBadRequest)
		return
	}

	if err := h.auth.ConfirmPasswordReset(ctx, req.Token, req.NewPassword); err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password has been reset successfully"}, http.StatusOK)
}
