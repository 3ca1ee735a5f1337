package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// RatingsHandler handles rating upserts
type RatingsHandler struct {
	logger  *slog.Logger
	ratings *service.RatingService
}

// NewRatingsHandler creates a new handler for rating endpoints
func NewRatingsHandler(logger *slog.Logger, ratings *service.RatingService) *RatingsHandler {
	return &RatingsHandler{
		logger:  logger,
		ratings: ratings,
	}
}

// Rate handles POST /api/v1/ratings (auth required)
// Upserts the caller's rating for a post and returns the new average.
func (h *RatingsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode rating request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.PostID == "" {
		sendError(h.logger, w, "post_id is required", http.StatusBadRequest)
		return
	}

	average, err := h.ratings.RatePost(ctx, req.PostID, userID, req.Rating)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.RateResponse{NewAverage: average}, http.StatusOK)
}
