// Package token issues and validates the two signed, time-limited bearer
// tokens used by the auth flows: the session access token and the
// password-reset token. Both are HS256 JWTs but are signed in isolated
// trust domains with independent secrets and lifetimes, so compromise of
// one secret cannot forge the other token kind.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates a malformed, tampered, or expired token
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingSubject indicates a validly signed token without a subject claim
	ErrMissingSubject = errors.New("token is missing subject claim")
)

// SigningConfig holds one keyed signing context: the secret and the
// lifetime of tokens issued under it.
type SigningConfig struct {
	Secret []byte
	TTL    time.Duration
}

// Service issues and verifies access and reset tokens.
// Verification is stateless: validity is a pure function of the token
// bytes, the signing secret, and the current time.
type Service struct {
	access SigningConfig
	reset  SigningConfig
}

// NewService creates a token service from the two signing contexts.
func NewService(access, reset SigningConfig) *Service {
	return &Service{
		access: access,
		reset:  reset,
	}
}

// IssueAccessToken creates a session token with subject = user ID.
func (s *Service) IssueAccessToken(userID string) (string, error) {
	return issue(s.access, userID)
}

// VerifyAccessToken validates a session token and returns its subject
// (the user ID). Returns ErrInvalidToken on bad signature, malformed
// input, or expiry; ErrMissingSubject if the payload lacks a subject.
func (s *Service) VerifyAccessToken(tokenString string) (string, error) {
	return verify(s.access, tokenString)
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *Service) AccessTokenTTL() time.Duration {
	return s.access.TTL
}

// IssueResetToken creates a password-reset token with subject = email.
// Callers must pass the email already lowercased.
func (s *Service) IssueResetToken(email string) (string, error) {
	return issue(s.reset, email)
}

// VerifyResetToken validates a reset token and returns its subject
// (the email). Same failure taxonomy as VerifyAccessToken.
func (s *Service) VerifyResetToken(tokenString string) (string, error) {
	return verify(s.reset, tokenString)
}

func issue(cfg SigningConfig, subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// verify parses and validates a token against one signing context.
// All parsing faults from the JWT library are normalized to
// ErrInvalidToken so internal details never leak to callers.
func verify(cfg SigningConfig, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HS256 is accepted; reject any other algorithm outright
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
