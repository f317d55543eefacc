package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenMissing occurs when a request carries no bearer token.
	ErrTokenMissing = errors.New("bearer token missing")
	// ErrTokenUnknown occurs when a bearer token is expired or was never issued.
	ErrTokenUnknown = errors.New("bearer token unknown")
)
