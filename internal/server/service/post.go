package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/validation"
)

// PostService handles post CRUD with author ownership checks.
type PostService struct {
	logger  *slog.Logger
	posts   storage.PostStorage
	tags    storage.TagStorage
	ratings storage.RatingStorage
}

// NewPostService creates the post service.
func NewPostService(logger *slog.Logger, posts storage.PostStorage, tags storage.TagStorage, ratings storage.RatingStorage) *PostService {
	return &PostService{
		logger:  logger,
		posts:   posts,
		tags:    tags,
		ratings: ratings,
	}
}

// PostWithRating bundles a post with its aggregate and, when the caller
// is authenticated, the caller's own rating.
type PostWithRating struct {
	Post          *models.Post
	AverageRating float64
	UserRating    *float64
}

// PostPage is one page of posts.
type PostPage struct {
	Posts []PostWithRating
	Total int
	Page  int
	Size  int
}

// CreatePost creates a post authored by authorID with the given tag IDs
// attached. Unknown tag IDs are silently skipped.
func (s *PostService) CreatePost(ctx context.Context, authorID, title, content string, isPublished bool, tagIDs []string) (*models.Post, error) {
	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	tags, err := s.tags.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Content:     content,
		IsPublished: isPublished,
		AuthorID:    authorID,
		CreatedAt:   time.Now(),
		Tags:        tags,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID))

	return post, nil
}

// GetPost retrieves a post with its average rating and, when userID is
// non-empty, that user's own rating.
func (s *PostService) GetPost(ctx context.Context, postID, userID string) (*PostWithRating, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	average, err := s.ratings.AverageRatingByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average: %w", err)
	}

	result := &PostWithRating{
		Post:          post,
		AverageRating: average,
	}

	if userID != "" {
		userRating, err := s.ratings.GetUserRatingForPost(ctx, postID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user rating: %w", err)
		}
		result.UserRating = userRating
	}

	return result, nil
}

// ListPosts returns one page of posts, each with its average rating and
// the requesting user's rating when userID is non-empty.
func (s *PostService) ListPosts(ctx context.Context, page, size int, tagName, userID string) (*PostPage, error) {
	posts, total, err := s.posts.ListPosts(ctx, storage.PostFilter{
		TagName: tagName,
		Page:    page,
		Size:    size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := &PostPage{
		Total: total,
		Page:  page,
		Size:  size,
	}

	for _, post := range posts {
		average, err := s.ratings.AverageRatingByPost(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute average: %w", err)
		}

		item := PostWithRating{
			Post:          post,
			AverageRating: average,
		}

		if userID != "" {
			userRating, err := s.ratings.GetUserRatingForPost(ctx, post.ID, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch user rating: %w", err)
			}
			item.UserRating = userRating
		}

		result.Posts = append(result.Posts, item)
	}

	return result, nil
}

// UpdatePost updates a post's fields; only the author may modify it.
func (s *PostService) UpdatePost(ctx context.Context, postID, callerID, title, content string, isPublished bool, tagIDs []string) (*models.Post, error) {
	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrNotPostAuthor
	}

	tags := post.Tags
	if len(tagIDs) > 0 {
		tags, err = s.tags.GetTagsByIDs(ctx, tagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
	}

	now := time.Now()
	post.Title = title
	post.Content = content
	post.IsPublished = isPublished
	post.UpdatedAt = &now
	post.Tags = tags

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// SetPublished toggles the publish flag; only the author may do it.
func (s *PostService) SetPublished(ctx context.Context, postID, callerID string, published bool) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrNotPostAuthor
	}

	if err := s.posts.SetPublished(ctx, postID, published); err != nil {
		return nil, err
	}

	post.IsPublished = published
	return post, nil
}

// DeletePost deletes a post; only the author may do it. Ratings cascade.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID {
		return ErrNotPostAuthor
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "post deleted",
		slog.String("post_id", postID),
		slog.String("author_id", callerID))

	return nil
}
