package errors

import (
	"errors"
	"fmt"
)

// Common error kinds for the blog server. Every service failure wraps one of
// these so the HTTP layer can map it to a status code without inspecting
// internal detail.
var (
	// Authentication errors - missing accounts, bad passwords and invalid,
	// expired or revoked tokens are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Lookup errors
	ErrNotFound = errors.New("not found")

	// Unique-field collisions (username, email, blog title, tag name)
	ErrConflict = errors.New("already in use")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Validation marks err as a validation failure while keeping its message.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
