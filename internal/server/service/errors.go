package service

import "errors"

// Service-level errors, surfaced to handlers for translation into
// protocol responses. All are terminal and non-retryable.
var (
	// ErrValidation wraps field validation failures (rendered as 400)
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials covers both unknown user and wrong password,
	// deliberately indistinguishable to avoid user enumeration
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSecretPhrase indicates the recovery phrase did not match
	ErrInvalidSecretPhrase = errors.New("invalid secret phrase")

	// ErrInvalidOrExpiredToken indicates a bad or expired reset token
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrNotPostAuthor indicates the caller does not own the post
	ErrNotPostAuthor = errors.New("not authorized to modify this post")

	// ErrInvalidRating indicates a rating value outside [0.5, 5.0]
	ErrInvalidRating = errors.New("rating must be between 0.5 and 5.0")
)
