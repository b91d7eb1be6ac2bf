package validator

import "errors"

var (
	// ErrInvalidPattern is returned when a pattern attribute cannot be compiled.
	ErrInvalidPattern = errors.New("validator: invalid pattern")

	// ErrInvalidNumber is returned when a numeric bound cannot be parsed.
	ErrInvalidNumber = errors.New("validator: invalid number")
)
