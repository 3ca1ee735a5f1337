// Package api defines the JSON wire types for the blog backend.
package api

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecoveryPhrase string `json:"password_reminder"` // secret phrase used to authorize a reset
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
	UserID      string `json:"user_id"`
	ExpiresIn   int64  `json:"expires_in"` // access token lifetime in seconds
}

// ResetRequestRequest is the payload for requesting a password reset.
type ResetRequestRequest struct {
	Email          string `json:"email"`
	RecoveryPhrase string `json:"password_reminder"`
}

// ResetRequestResponse is returned on a successful reset request.
// ResetToken is present only under synchronous delivery.
type ResetRequestResponse struct {
	ResetToken string `json:"reset_token,omitempty"`
	Message    string `json:"message"`
}

// ResetConfirmRequest is the payload for completing a password reset.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// MessageResponse carries a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries an error result.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
