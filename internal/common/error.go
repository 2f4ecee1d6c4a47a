// Package common defines shared constants and sentinel errors used across
// client and server layers of fintrack. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors shared by the client draft check and the server.
	ErrorNoUserID         = errors.New("no user id")
	ErrorEmptyDescription = errors.New("empty description")
	ErrorHasID            = errors.New("draft already carries an id")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
