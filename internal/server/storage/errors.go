package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrPostNotFound indicates that post was not found in storage
	ErrPostNotFound = errors.New("post not found")

	// ErrTagNotFound indicates that tag was not found in storage
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagAlreadyExists indicates that a tag with this name already exists
	ErrTagAlreadyExists = errors.New("tag already exists")

	// ErrRatingNotFound indicates that rating row was not found
	ErrRatingNotFound = errors.New("rating not found")

	// ErrDuplicateRating indicates the (post, user) unique constraint rejected
	// an insert. This is the storage-level safety net against concurrent
	// first-time ratings for the same pair.
	ErrDuplicateRating = errors.New("rating already exists for this post and user")
)
