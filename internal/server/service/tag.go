package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/validation"
)

// TagService handles tag CRUD.
type TagService struct {
	logger *slog.Logger
	tags   storage.TagStorage
}

// NewTagService creates the tag service.
func NewTagService(logger *slog.Logger, tags storage.TagStorage) *TagService {
	return &TagService{
		logger: logger,
		tags:   tags,
	}
}

// CreateTag creates a tag with a unique name.
func (s *TagService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if err := validation.ValidateTagName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	tag := &models.Tag{
		ID:   uuid.New().String(),
		Name: name,
	}

	if err := s.tags.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tag created", slog.String("tag_id", tag.ID), slog.String("name", name))

	return tag, nil
}

// ListTags retrieves all tags.
func (s *TagService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tags.ListTags(ctx)
}

// DeleteTag deletes a tag by ID.
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	return s.tags.DeleteTag(ctx, tagID)
}
