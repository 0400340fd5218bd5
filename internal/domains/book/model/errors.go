package model

import (
	"errors"
	"strings"
)

var (
	ErrBookNotFound           = errors.New("book not found")
	ErrMissingQuery           = errors.New("search query is required")
	ErrProtectedFieldMutation = errors.New("cannot update timestamp fields")

	// Create validation, checked in this order
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidPriceType  = errors.New("price must be a number")
	ErrInvalidPriceRange = errors.New("price must be greater than 0")
	ErrPriceTooLarge     = errors.New("price must not exceed 9999999999.99")
	ErrInvalidImageURL   = errors.New("image must be a valid URL")
)

// ValidationError carries what the client sent wrong.
// Fields is set for ErrMissingFields, Received for the others.
type ValidationError struct {
	Err      error
	Fields   []string
	Received any
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Err.Error() + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
