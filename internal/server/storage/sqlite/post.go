package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

// CreatePost creates a new post with its tag associations
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO posts (id, title, content, is_published, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.IsPublished,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if err := replacePostTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPostByID retrieves a post with its tags
func (s *Storage) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
		SELECT id, title, content, is_published, author_id, created_at, updated_at
		FROM posts
		WHERE id = ?
	`

	post := &models.Post{}
	var updatedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, postID).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.IsPublished,
		&post.AuthorID,
		&post.CreatedAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}

	tags, err := s.postTags(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// ListPosts retrieves a page of posts with their tags plus the total count
func (s *Storage) ListPosts(ctx context.Context, filter storage.PostFilter) ([]*models.Post, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.Size
	if size < 1 {
		size = 10
	}

	var (
		countQuery string
		listQuery  string
		countArgs  []any
		listArgs   []any
	)

	if filter.TagName != "" {
		countQuery = `
			SELECT COUNT(DISTINCT p.id)
			FROM posts p
			JOIN post_tags pt ON pt.post_id = p.id
			JOIN tags t ON t.id = pt.tag_id
			WHERE t.name = ?
		`
		countArgs = []any{filter.TagName}

		listQuery = `
			SELECT DISTINCT p.id, p.title, p.content, p.is_published, p.author_id, p.created_at, p.updated_at
			FROM posts p
			JOIN post_tags pt ON pt.post_id = p.id
			JOIN tags t ON t.id = pt.tag_id
			WHERE t.name = ?
			ORDER BY p.created_at DESC
			LIMIT ? OFFSET ?
		`
		listArgs = []any{filter.TagName, size, (page - 1) * size}
	} else {
		countQuery = `SELECT COUNT(*) FROM posts`

		listQuery = `
			SELECT id, title, content, is_published, author_id, created_at, updated_at
			FROM posts
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?
		`
		listArgs = []any{size, (page - 1) * size}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var posts []*models.Post

	for rows.Next() {
		post := &models.Post{}
		var updatedAt sql.NullTime

		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.IsPublished,
			&post.AuthorID,
			&post.CreatedAt,
			&updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}

		if updatedAt.Valid {
			post.UpdatedAt = &updatedAt.Time
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	for _, post := range posts {
		tags, err := s.postTags(ctx, post.ID)
		if err != nil {
			return nil, 0, err
		}
		post.Tags = tags
	}

	return posts, total, nil
}

// UpdatePost updates title, content, publish flag, updated_at and tags
func (s *Storage) UpdatePost(ctx context.Context, post *models.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE posts
		SET title = ?, content = ?, is_published = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		post.Title,
		post.Content,
		post.IsPublished,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrPostNotFound
	}

	if err := replacePostTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetPublished flips the publish flag
func (s *Storage) SetPublished(ctx context.Context, postID string, published bool) error {
	query := `UPDATE posts SET is_published = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, published, postID)
	if err != nil {
		return fmt.Errorf("failed to update publish flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// DeletePost deletes a post; ratings and tag links cascade
func (s *Storage) DeletePost(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// PostExists reports whether a post with the given ID exists
func (s *Storage) PostExists(ctx context.Context, postID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, postID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

// postTags loads the tags attached to a post
func (s *Storage) postTags(ctx context.Context, postID string) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ?
		ORDER BY t.name
	`

	rows, err := s.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query post tags: %w", err)
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

// replacePostTags rewrites the post_tags links for a post inside a transaction
func replacePostTags(ctx context.Context, tx *sql.Tx, postID string, tags []models.Tag) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)`,
			postID, tag.ID,
		); err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}

	return nil
}
