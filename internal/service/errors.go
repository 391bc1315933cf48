package service

import "errors"

// Errors returned by the stores. Callers match them with errors.Is; the
// returned errors wrap them with detail.
var (
	// ErrValidation marks a missing or malformed input field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a signup with an email that is already registered.
	ErrConflict = errors.New("user already exists")
	// ErrNotFound marks a login with an unknown email.
	ErrNotFound = errors.New("user not found")
	// ErrAuth marks a login with a wrong password.
	ErrAuth = errors.New("invalid password")
)
