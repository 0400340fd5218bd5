package user

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrIdentityNotFound = errors.New("user not found")

	// Conflict
	ErrDuplicateIdentity = errors.New("user already exists")
)

// Service-level (Business logic) errors
var (
	ErrInvalidCredential = errors.New("incorrect password")
)
