package models

import "time"

// User represents a registered account.
// Username and email are stored lowercase; uniqueness is enforced by storage.
type User struct {
	ID             string    `json:"id"`              // UUID
	Username       string    `json:"username"`        // unique, lowercase
	Email          string    `json:"email"`           // unique, lowercase
	PasswordHash   string    `json:"-"`               // bcrypt hash, never serialized
	RecoveryPhrase string    `json:"-"`               // shared secret for password reset
	CreatedAt      time.Time `json:"created_at"`
}
