// Package common defines shared constants and sentinel errors used across
// the lacsapi server, its repositories and the admin CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid signature, expired or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Location import errors.
	ErrNoLocations    = errors.New("no locations loaded")
	ErrLoadInProgress = errors.New("location load already in progress")
	ErrSourceNotFound = errors.New("location source not found")
	ErrImport         = errors.New("location import failed")
)
