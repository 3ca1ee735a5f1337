package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/auth"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/validation"
)

// UserService handles user CRUD outside the auth flows.
type UserService struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher *auth.PasswordHasher
}

// NewUserService creates the user service.
func NewUserService(logger *slog.Logger, users storage.UserStorage, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		hasher: hasher,
	}
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// GetUser retrieves one user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateUser replaces username, email, password and recovery phrase.
// All fields pass the same validation as registration; the password is
// re-hashed before storage.
func (s *UserService) UpdateUser(ctx context.Context, userID, username, email, password, recoveryPhrase string) (*models.User, error) {
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

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Username = username
	user.Email = email
	user.PasswordHash = hash
	user.RecoveryPhrase = recoveryPhrase

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes an account; posts and ratings cascade.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", userID))
	return nil
}
