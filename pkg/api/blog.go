package api

import "time"

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUserRequest replaces all mutable user fields.
type UpdateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecoveryPhrase string `json:"password_reminder"`
}

// CreatePostRequest is the payload for creating or updating a post.
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	IsPublished bool     `json:"is_published"`
	TagIDs      []string `json:"tag_ids"`
}

// TagResponse is one tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTagRequest is the payload for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// PostResponse is one post with its aggregate rating.
type PostResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	IsPublished   bool          `json:"is_published"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
	Tags          []TagResponse `json:"tags"`
	AverageRating float64       `json:"average_rating"`
	UserRating    *float64      `json:"user_rating,omitempty"` // requester's own rating, if any
}

// PostListResponse is one page of posts.
type PostListResponse struct {
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Posts []PostResponse `json:"posts"`
}

// RateRequest is the payload for rating a post.
type RateRequest struct {
	PostID string  `json:"post_id"`
	Rating float64 `json:"rating"` // in [0.5, 5.0]
}

// RateResponse returns the post's recomputed average.
type RateResponse struct {
	NewAverage float64 `json:"new_average"`
}
