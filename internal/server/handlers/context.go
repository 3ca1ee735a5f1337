package handlers

import "context"

// contextKey is a private type for request context values
type contextKey string

// UserIDKey is the context key carrying the authenticated user's ID,
// set by the auth middleware
const UserIDKey contextKey = "user_id"

// UserIDFromContext extracts the authenticated user ID, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
