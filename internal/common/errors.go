// Package common defines shared constants and sentinel errors used across
// the store, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (missing, malformed or badly signed token).
	ErrInvalidToken = errors.New("invalid token")
)
