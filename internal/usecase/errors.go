package usecase

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// ErrInvalidInput indicates the request failed basic validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameTaken indicates a verified account already holds the username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken indicates a verified account already holds the email address.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrAccountNotFound indicates no account matches the supplied username or id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrVerificationCodeExpired indicates the stored code is past its expiry.
	ErrVerificationCodeExpired = errors.New("verification code expired")
	// ErrVerificationCodeMismatch indicates the submitted code differs from the stored one.
	ErrVerificationCodeMismatch = errors.New("verification code mismatch")
	// ErrVerificationDelivery indicates the verification code could not be delivered.
	ErrVerificationDelivery = errors.New("verification code delivery failed")
	// ErrNotAcceptingMessages indicates the recipient closed their acceptance gate.
	ErrNotAcceptingMessages = errors.New("account is not accepting messages")
	// ErrMessageNotFound indicates the message is absent from the owner's inbox.
	ErrMessageNotFound = errors.New("message not found")
	// ErrUnauthenticated indicates an owner operation was called without a principal.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUpstream indicates the text generation service failed.
	ErrUpstream = errors.New("upstream text generation failed")
	// ErrInvalidCredentials indicates the identifier or password are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotVerified indicates the account must be verified before signing in.
	ErrAccountNotVerified = errors.New("account not verified")
)

const (
	usernameMinLength = 3
	usernameMaxLength = 20
	passwordMinLength = 6
	// MaxMessageLength bounds a single anonymous message.
	MaxMessageLength = 1000
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateUsername applies the account username rule and returns a user-facing reason.
func ValidateUsername(username string) error {
	switch {
	case len(username) < usernameMinLength:
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, usernameMinLength)
	case len(username) > usernameMaxLength:
		return fmt.Errorf("%w: username must be no more than %d characters", ErrInvalidInput, usernameMaxLength)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: username must not contain special characters", ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InputReason extracts the user-facing part of an ErrInvalidInput error.
func InputReason(err error) string {
	msg := err.Error()
	prefix := ErrInvalidInput.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
