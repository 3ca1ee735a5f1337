package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// UsersHandler handles user CRUD requests. Registration lives here
// (POST /users) and is delegated to the auth flow controller.
type UsersHandler struct {
	logger *slog.Logger
	auth   *service.AuthService
	users  *service.UserService
}

// NewUsersHandler creates a new handler for user endpoints
func NewUsersHandler(logger *slog.Logger, auth *service.AuthService, users *service.UserService) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		auth:   auth,
		users:  users,
	}
}

// Create handles POST /api/v1/users (registration)
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(ctx, req.Username, req.Email, req.Password, req.RecoveryPhrase)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toUserResponse(user), http.StatusCreated)
}

// List handles GET /api/v1/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := make([]api.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get handles GET /api/v1/users/{id}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.users.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toUserResponse(user), http.StatusOK)
}

// Update handles PUT /api/v1/users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.UpdateUser(ctx, r.PathValue("id"), req.Username, req.Email, req.Password, req.RecoveryPhrase)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toUserResponse(user), http.StatusOK)
}

// Delete handles DELETE /api/v1/users/{id}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.users.DeleteUser(ctx, r.PathValue("id")); err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "User deleted successfully"}, http.StatusOK)
}

func toUserResponse(user *models.User) api.UserResponse {
	return api.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
