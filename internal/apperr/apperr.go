// Package apperr defines the sentinel errors services return to handlers.
// Handlers map them onto HTTP status codes with errors.Is; everything else
// becomes a 500.
package apperr

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidState    = errors.New("invalid state")
	ErrExternalService = errors.New("external service failure")
	ErrTimedOut        = errors.New("timed out")
)
