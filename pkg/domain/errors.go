package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when caller input fails validation
	ErrValidation = errors.New("validation error")
	// ErrUnsupportedPair is returned when the rate provider confirms the
	// currency pair cannot be converted
	ErrUnsupportedPair = errors.New("unsupported currency pair")
	// ErrUpstream is returned for any other rate provider failure
	// (timeout, 5xx, malformed payload)
	ErrUpstream = errors.New("exchange rate provider unavailable")
)
