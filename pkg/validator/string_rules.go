package validator

import (
	"strings"
	"unicode/utf8"
)

// Required matches values that are not empty after trimming whitespace.
func Required() Predicate {
	return func(value string) bool {
		return strings.TrimSpace(value) != ""
	}
}

// NonEmpty matches any value with at least one character. Native "required"
// inputs treat whitespace as a value, so the constraint checks use this
// instead of Required.
func NonEmpty() Predicate {
	return func(value string) bool {
		return value != ""
	}
}

// MinLen matches values with at least min characters.
func MinLen(min int) Predicate {
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= min
	}
}

// MaxLen matches values with at most max characters.
func MaxLen(max int) Predicate {
	return func(value string) bool {
		return utf8.RuneCountInString(value) <= max
	}
}

