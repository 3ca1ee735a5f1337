package models

import "time"

// Post represents a blog post authored by a user.
type Post struct {
	ID          string     `json:"id"`      // UUID
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsPublished bool       `json:"is_published"`
	AuthorID    string     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
}

// Tag is a label attachable to posts (many-to-many).
type Tag struct {
	ID   string `json:"id"` // UUID
	Name string `json:"name"`
}

// Rating is one user's score for one post.
// At most one row per (PostID, UserID) persists after a successful upsert;
// the numeric ID gives a deterministic ordering for duplicate repair.
type Rating struct {
	ID     int64   `json:"id"`
	PostID string  `json:"post_id"`
	UserID string  `json:"user_id"`
	Rating float64 `json:"rating"` // in [0.5, 5.0]
}
