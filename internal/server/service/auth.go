// Package service contains the business logic behind the HTTP handlers:
// the auth flows (registration, login, password recovery), the rating
// upsert engine, and the posts/tags/users operations. Handlers translate
// the sentinel errors returned here into status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/auth"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/validation"
)

// AuthService orchestrates login, registration and the two-step password
// reset flow. It owns no state of its own; every run goes to completion
// synchronously against the injected collaborators.
type AuthService struct {
	logger   *slog.Logger
	users    storage.UserStorage
	tokens   *token.Service
	hasher   *auth.PasswordHasher
	delivery ResetDelivery
}

// NewAuthService creates the auth flow controller.
func NewAuthService(
	logger *slog.Logger,
	users storage.UserStorage,
	tokens *token.Service,
	hasher *auth.PasswordHasher,
	delivery ResetDelivery,
) *AuthService {
	return &AuthService{
		logger:   logger,
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		delivery: delivery,
	}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	TokenType   string
	UserID      string
	ExpiresIn   int64
}

// Register creates a new account. Username and email are normalized to
// lowercase before storage; duplicates surface as
// storage.ErrUserAlreadyExists.
func (s *AuthService) Register(ctx context.Context, username, email, password, recoveryPhrase string) (*models.User, error) {
	username = strings.ToLower(username)
	email = strings.ToLower(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validation.ValidateRecoveryPhrase(recoveryPhrase); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		RecoveryPhrase: recoveryPhrase,
		CreatedAt:      time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	return user, nil
}

// Login verifies credentials and issues an access token. An unknown
// username and a wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.ToLower(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login failed: unknown user", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed: wrong password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserID:      user.ID,
		ExpiresIn:   int64(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}

// RequestPasswordReset proves the caller knows {email, recovery phrase}
// and, on success, issues a reset token and hands it off for delivery.
// The phrase is compared by exact string equality, nothing fuzzy.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, recoveryPhrase string) (*DeliveryResult, error) {
	email = strings.ToLower(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.RecoveryPhrase != recoveryPhrase {
		s.logger.WarnContext(ctx, "reset request with wrong secret phrase",
			slog.String("email", email))
		return nil, ErrInvalidSecretPhrase
	}

	resetToken, err := s.tokens.IssueResetToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue reset token: %w", err)
	}

	result, err := s.delivery.Deliver(ctx, user.Email, resetToken)
	if err != nil {
		return nil, fmt.Errorf("failed to deliver reset token: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset requested", slog.String("email", email))

	return &result, nil
}

// ConfirmPasswordReset verifies the reset token and overwrites the stored
// password hash. The new password must satisfy the same policy as
// registration. A user deleted between request and confirm surfaces as
// storage.ErrUserNotFound.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, resetToken, newPassword string) error {
	email, err := s.tokens.VerifyResetToken(resetToken)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed", slog.String("user_id", user.ID))

	return nil
}
