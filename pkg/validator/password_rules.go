package validator

import "regexp"

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	// Anything that is not a letter, digit or underscore.
	specialCharRegex = regexp.MustCompile(`\W`)
)

// HasUpper matches values containing an uppercase ASCII letter.
func HasUpper() Predicate {
	return matches(uppercaseRegex)
}

// HasLower matches values containing a lowercase ASCII letter.
func HasLower() Predicate {
	return matches(lowercaseRegex)
}

// HasDigit matches values containing a digit.
func HasDigit() Predicate {
	return matches(digitRegex)
}

// HasSpecial matches values containing a non-word character.
func HasSpecial() Predicate {
	return matches(specialCharRegex)
}
