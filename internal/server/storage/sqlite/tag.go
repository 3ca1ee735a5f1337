package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

// CreateTag creates a new tag
func (s *Storage) CreateTag(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (id, name) VALUES (?, ?)`

	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrTagAlreadyExists
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}

	return nil
}

// GetTagByID retrieves a tag by ID
func (s *Storage) GetTagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	query := `SELECT id, name FROM tags WHERE id = ?`

	tag := &models.Tag{}
	err := s.db.QueryRowContext(ctx, query, tagID).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// GetTagsByIDs retrieves the tags matching the given IDs; unknown IDs are skipped
func (s *Storage) GetTagsByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(tagIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`SELECT id, name FROM tags WHERE id IN (%s) ORDER BY name`, placeholders)

	args := make([]any, len(tagIDs))
	for i, id := range tagIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tags []models.Tag

	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tags, nil
}

// ListTags retrieves all tags ordered by name
func (s *Storage) ListTags(ctx context.Context) ([]*models.Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tags []*models.Tag

	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tags, nil
}

// DeleteTag deletes a tag by ID; post links cascade
func (s *Storage) DeleteTag(ctx context.Context, tagID string) error {
	query := `DELETE FROM tags WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTagNotFound
	}

	return nil
}
