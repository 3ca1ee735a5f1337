package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// UsernamePattern defines the allowed username format:
// latin letters (a-z, A-Z), digits (0-9) and underscore (_).
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// TagNamePattern defines the allowed tag name format:
// latin letters, digits, underscore, space and hyphen.
var TagNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_ -]+$`)

const (
	// MinUsernameLen is the minimum username length
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 50

	// MinPasswordLen is the minimum password length
	MinPasswordLen = 8
	// MaxPasswordLen is the maximum password length
	MaxPasswordLen = 100

	// MinRecoveryPhraseLen is the minimum recovery phrase length
	MinRecoveryPhraseLen = 5
	// MaxRecoveryPhraseLen is the maximum recovery phrase length
	MaxRecoveryPhraseLen = 255

	// MinTagNameLen is the minimum tag name length
	MinTagNameLen = 2
	// MaxTagNameLen is the maximum tag name length
	MaxTagNameLen = 50

	// MinTitleLen is the minimum post title length
	MinTitleLen = 5
	// MaxTitleLen is the maximum post title length
	MaxTitleLen = 100

	// MinContentLen is the minimum post content length
	MinContentLen = 10
	// MaxContentLen is the maximum post content length
	MaxContentLen = 5000
)

// validate is a shared validator instance used for field-level rules
// that have a well-known tag, like email syntax.
var validate = validator.New()

// ValidateUsername checks that username matches the allowed format.
// Callers are expected to lowercase the username before storing it.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidateEmail checks that email is syntactically valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email address")
	}

	return nil
}

// ValidatePassword enforces the registration password policy:
// 8-100 characters, at least one uppercase letter, one lowercase letter,
// one digit, and no two consecutive digit characters.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	var hasUpper, hasLower, hasDigit bool
	runes := []rune(password)
	for i, c := range runes {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				return fmt.Errorf("password must not contain consecutive digits")
			}
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// ValidateRecoveryPhrase checks the mandatory recovery phrase length bounds.
// The phrase is compared by exact string equality during reset, so no
// normalization is applied here.
func ValidateRecoveryPhrase(phrase string) error {
	if phrase == "" {
		return fmt.Errorf("recovery phrase cannot be empty")
	}

	if len(phrase) < MinRecoveryPhraseLen {
		return fmt.Errorf("recovery phrase must be at least %d characters long", MinRecoveryPhraseLen)
	}

	if len(phrase) > MaxRecoveryPhraseLen {
		return fmt.Errorf("recovery phrase must not exceed %d characters", MaxRecoveryPhraseLen)
	}

	return nil
}

// ValidateTagName checks that a tag name matches the allowed format.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}

	if len(name) < MinTagNameLen {
		return fmt.Errorf("tag name must be at least %d characters long", MinTagNameLen)
	}

	if len(name) > MaxTagNameLen {
		return fmt.Errorf("tag name must not exceed %d characters", MaxTagNameLen)
	}

	if !TagNamePattern.MatchString(name) {
		return fmt.Errorf("tag name can only contain letters, numbers, underscores, spaces, and hyphens")
	}

	return nil
}

// ValidatePostTitle checks post title length bounds.
func ValidatePostTitle(title string) error {
	if len(title) < MinTitleLen {
		return fmt.Errorf("title must be at least %d characters long", MinTitleLen)
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}
	return nil
}

// ValidatePostContent checks post content length bounds.
func ValidatePostContent(content string) error {
	if len(content) < MinContentLen {
		return fmt.Errorf("content must be at least %d characters long", MinContentLen)
	}
	if len(content) > MaxContentLen {
		return fmt.Errorf("content must not exceed %d characters", MaxContentLen)
	}
	return nil
}
