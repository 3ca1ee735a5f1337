package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

// GetRatingsByPostAndUser retrieves all rating rows for one (post, user) pair.
// Ordered by ascending ID so the lowest ID is the deterministic canonical row
// during duplicate repair.
func (s *Storage) GetRatingsByPostAndUser(ctx context.Context, postID, userID string) ([]*models.Rating, error) {
	query := `
		SELECT id, post_id, user_id, rating
		FROM ratings
		WHERE post_id = ? AND user_id = ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ratings []*models.Rating

	for rows.Next() {
		rating := &models.Rating{}
		if err := rows.Scan(
			&rating.ID,
			&rating.PostID,
			&rating.UserID,
			&rating.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ratings, nil
}

// InsertRating inserts a new rating row and fills in its assigned ID
func (s *Storage) InsertRating(ctx context.Context, rating *models.Rating) error {
	query := `INSERT INTO ratings (post_id, user_id, rating) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, rating.PostID, rating.UserID, rating.Rating)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDuplicateRating
		}
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted rating id: %w", err)
	}
	rating.ID = id

	return nil
}

// UpdateRatingValue overwrites the value of one rating row by ID
func (s *Storage) UpdateRatingValue(ctx context.Context, ratingID int64, value float64) error {
	query := `UPDATE ratings SET rating = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, value, ratingID)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRatingNotFound
	}

	return nil
}

// DeleteRating deletes one rating row by ID
func (s *Storage) DeleteRating(ctx context.Context, ratingID int64) error {
	query := `DELETE FROM ratings WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, ratingID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRatingNotFound
	}

	return nil
}

// AverageRatingByPost computes the arithmetic mean of all ratings for a post.
// COALESCE turns the empty-set NULL into 0.0 so a post with no ratings never
// produces a fault.
func (s *Storage) AverageRatingByPost(ctx context.Context, postID string) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0.0) FROM ratings WHERE post_id = ?`

	var avg float64
	if err := s.db.QueryRowContext(ctx, query, postID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return avg, nil
}

// GetUserRatingForPost returns the user's rating value for a post, or nil
// if the user has not rated it
func (s *Storage) GetUserRatingForPost(ctx context.Context, postID, userID string) (*float64, error) {
	// In a dirty state with duplicates the lowest ID is the canonical row
	query := `
		SELECT rating FROM ratings
		WHERE post_id = ? AND user_id = ?
		ORDER BY id ASC
		LIMIT 1
	`

	rows, err := s.db.QueryContext(ctx, query, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user rating: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		return nil, nil
	}

	var value float64
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("failed to scan rating: %w", err)
	}

	return &value, nil
}
