package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// TagsHandler handles tag CRUD requests
type TagsHandler struct {
	logger *slog.Logger
	tags   *service.TagService
}

// NewTagsHandler creates a new handler for tag endpoints
func NewTagsHandler(logger *slog.Logger, tags *service.TagService) *TagsHandler {
	return &TagsHandler{
		logger: logger,
		tags:   tags,
	}
}

// Create handles POST /api/v1/tags (auth required)
func (h *TagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode tag request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	tag, err := h.tags.CreateTag(ctx, req.Name)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.TagResponse{ID: tag.ID, Name: tag.Name}, http.StatusCreated)
}

// List handles GET /api/v1/tags
func (h *TagsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tags, err := h.tags.ListTags(ctx)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := make([]api.TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, api.TagResponse{ID: tag.ID, Name: tag.Name})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete handles DELETE /api/v1/tags/{id} (auth required)
func (h *TagsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.tags.DeleteTag(ctx, r.PathValue("id")); err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Tag deleted successfully"}, http.StatusOK)
}
