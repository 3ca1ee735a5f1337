package storage

import (
	"context"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
)

// PostFilter narrows down ListPosts results.
type PostFilter struct {
	// TagName filters posts carrying the given tag; empty means no filter
	TagName string
	// Page is 1-based
	Page int
	// Size is the page size
	Size int
}

// PostStorage defines interface for post persistence
type PostStorage interface {
	// CreatePost creates a new post with its tag associations
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPostByID retrieves a post with its tags
	// Returns ErrPostNotFound if post doesn't exist
	GetPostByID(ctx context.Context, postID string) (*models.Post, error)

	// ListPosts retrieves a page of posts with their tags plus the total count
	ListPosts(ctx context.Context, filter PostFilter) ([]*models.Post, int, error)

	// UpdatePost updates title, content, publish flag, updated_at and tags
	// Returns ErrPostNotFound if post doesn't exist
	UpdatePost(ctx context.Context, post *models.Post) error

	// SetPublished flips the publish flag
	// Returns ErrPostNotFound if post doesn't exist
	SetPublished(ctx context.Context, postID string, published bool) error

	// DeletePost deletes a post; its ratings and tag links cascade
	// Returns ErrPostNotFound if post doesn't exist
	DeletePost(ctx context.Context, postID string) error

	// PostExists reports whether a post with the given ID exists
	PostExists(ctx context.Context, postID string) (bool, error)
}

// TagStorage defines interface for tag persistence
type TagStorage interface {
	// CreateTag creates a new tag
	// Returns ErrTagAlreadyExists if the name is taken
	CreateTag(ctx context.Context, tag *models.Tag) error

	// GetTagByID retrieves a tag by ID
	// Returns ErrTagNotFound if tag doesn't exist
	GetTagByID(ctx context.Context, tagID string) (*models.Tag, error)

	// GetTagsByIDs retrieves the tags matching the given IDs; unknown IDs are skipped
	GetTagsByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error)

	// ListTags retrieves all tags
	ListTags(ctx context.Context) ([]*models.Tag, error)

	// DeleteTag deletes a tag by ID; post links cascade
	// Returns ErrTagNotFound if tag doesn't exist
	DeleteTag(ctx context.Context, tagID string) error
}
