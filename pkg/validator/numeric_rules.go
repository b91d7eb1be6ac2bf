package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric input value. Empty values are not numbers.
func ParseNumber(value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidNumber)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}
	return f, nil
}

// Number matches values that parse as finite floating point numbers.
func Number() Predicate {
	return func(value string) bool {
		_, err := ParseNumber(value)
		return err == nil
	}
}

// MinNum matches numeric values >= min. Non-numeric values do not match.
func MinNum(min float64) Predicate {
	return func(value string) bool {
		f, err := ParseNumber(value)
		return err == nil && f >= min
	}
}

// MaxNum matches numeric values <= max. Non-numeric values do not match.
func MaxNum(max float64) Predicate {
	return func(value string) bool {
		f, err := ParseNumber(value)
		return err == nil && f <= max
	}
}

// StepOf matches numeric values that are base + n*step for an integer n.
// A non-positive step matches every number.
func StepOf(base, step float64) Predicate {
	return func(value string) bool {
		f, err := ParseNumber(value)
		if err != nil {
			return false
		}
		if step <= 0 {
			return true
		}
		n := (f - base) / step
		return math.Abs(n-math.Round(n)) < 1e-9
	}
}
