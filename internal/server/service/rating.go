package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

const (
	// MinRatingValue is the lowest accepted rating
	MinRatingValue = 0.5
	// MaxRatingValue is the highest accepted rating
	MaxRatingValue = 5.0
)

// RatingService enforces at-most-one rating per (post, user) pair with
// self-healing de-duplication, and recomputes the post's average.
type RatingService struct {
	logger  *slog.Logger
	posts   storage.PostStorage
	ratings storage.RatingStorage
}

// NewRatingService creates the rating upsert engine.
func NewRatingService(logger *slog.Logger, posts storage.PostStorage, ratings storage.RatingStorage) *RatingService {
	return &RatingService{
		logger:  logger,
		posts:   posts,
		ratings: ratings,
	}
}

// RatePost upserts the user's rating for a post and returns the new
// arithmetic mean of all ratings for that post.
//
// The lowest-ID row is canonical when duplicates exist; any remaining
// rows for the pair are deleted as a repair action. The storage-level
// unique constraint on (post_id, user_id) is the safety net for
// concurrent first-time ratings; a raced insert falls back into the
// update path here.
func (s *RatingService) RatePost(ctx context.Context, postID, userID string, value float64) (float64, error) {
	if math.IsNaN(value) || value < MinRatingValue || value > MaxRatingValue {
		return 0, ErrInvalidRating
	}

	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return 0, storage.ErrPostNotFound
	}

	existing, err := s.ratings.GetRatingsByPostAndUser(ctx, postID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	if len(existing) == 0 {
		rating := &models.Rating{
			PostID: postID,
			UserID: userID,
			Rating: value,
		}

		err := s.ratings.InsertRating(ctx, rating)
		if err != nil && errors.Is(err, storage.ErrDuplicateRating) {
			// Lost a race against a concurrent first-time rating for the
			// same pair; the row exists now, so reconcile via the update path
			existing, err = s.ratings.GetRatingsByPostAndUser(ctx, postID, userID)
			if err != nil {
				return 0, fmt.Errorf("failed to refetch ratings: %w", err)
			}
			if err := s.overwriteAndRepair(ctx, existing, value); err != nil {
				return 0, err
			}
		} else if err != nil {
			return 0, fmt.Errorf("failed to insert rating: %w", err)
		}
	} else {
		if err := s.overwriteAndRepair(ctx, existing, value); err != nil {
			return 0, err
		}
	}

	average, err := s.ratings.AverageRatingByPost(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average: %w", err)
	}

	return average, nil
}

// overwriteAndRepair updates the canonical (lowest ID) row and deletes
// the rest. The delete is a repair invariant, not an optimization: it
// restores at-most-one-row-per-pair after any dirty state.
func (s *RatingService) overwriteAndRepair(ctx context.Context, existing []*models.Rating, value float64) error {
	if len(existing) == 0 {
		return storage.ErrRatingNotFound
	}

	canonical := existing[0]
	if err := s.ratings.UpdateRatingValue(ctx, canonical.ID, value); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	for _, dup := range existing[1:] {
		if err := s.ratings.DeleteRating(ctx, dup.ID); err != nil {
			return fmt.Errorf("failed to delete duplicate rating: %w", err)
		}
	}

	if len(existing) > 1 {
		s.logger.InfoContext(ctx, "repaired duplicate ratings",
			slog.String("post_id", canonical.PostID),
			slog.String("user_id", canonical.UserID),
			slog.Int("duplicates_removed", len(existing)-1))
	}

	return nil
}
