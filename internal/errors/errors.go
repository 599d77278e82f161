package errors

import (
	"errors"
	"fmt"
)

// Common error types for the commerce client
var (
	// Session errors
	ErrNoSession        = errors.New("no session")
	ErrSessionStorage   = errors.New("session storage unavailable")
	ErrSessionCorrupted = errors.New("session record corrupted")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrAuthExpired  = errors.New("authentication expired")

	// Request errors
	ErrNetwork       = errors.New("network failure")
	ErrMalformedBody = errors.New("malformed response body")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

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
