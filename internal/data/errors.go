package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrTokenKeyRequired is returned when a token repository call has no key.
	ErrTokenKeyRequired = errors.New("token key is required")
)
