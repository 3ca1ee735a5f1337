package storage

import (
	"context"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
)

// RatingStorage defines interface for rating persistence
type RatingStorage interface {
	// GetRatingsByPostAndUser retrieves all rating rows for one (post, user)
	// pair, ordered by ascending numeric ID. Normally 0 or 1 rows; a dirty
	// state with more is tolerated and repaired by the caller.
	GetRatingsByPostAndUser(ctx context.Context, postID, userID string) ([]*models.Rating, error)

	// InsertRating inserts a new rating row and fills in its assigned ID
	// Returns ErrDuplicateRating if the (post, user) unique constraint rejects it
	InsertRating(ctx context.Context, rating *models.Rating) error

	// UpdateRatingValue overwrites the value of one rating row by ID
	// Returns ErrRatingNotFound if the row doesn't exist
	UpdateRatingValue(ctx context.Context, ratingID int64, value float64) error

	// DeleteRating deletes one rating row by ID
	// Returns ErrRatingNotFound if the row doesn't exist
	DeleteRating(ctx context.Context, ratingID int64) error

	// AverageRatingByPost computes the arithmetic mean of all ratings for a
	// post. A post with no ratings yields 0.0, never an error.
	AverageRatingByPost(ctx context.Context, postID string) (float64, error)

	// GetUserRatingForPost returns the requesting user's rating value for a
	// post, or nil if the user has not rated it.
	GetUserRatingForPost(ctx context.Context, postID, userID string) (*float64, error)
}
