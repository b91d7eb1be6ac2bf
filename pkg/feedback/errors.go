package feedback

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSnapshot    = errors.New("feedback: no validity snapshot for field")
	ErrEngineClosed       = errors.New("feedback: engine closed")
	ErrEmptyFieldName     = errors.New("feedback: empty field name")
	ErrGroupFieldMismatch = errors.New("feedback: nested group targets another field")
	ErrInvalidMatcher     = errors.New("feedback: invalid rule matcher")
	ErrInvalidStopPolicy  = errors.New("feedback: invalid stop policy")
	ErrInvariant          = errors.New("feedback: internal invariant violated")
)

// DuplicateFieldError is returned when a field name is registered twice.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("feedback: field %q is already registered", e.Field)
}

// UnknownFieldError is returned when an operation names an unregistered field.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("feedback: field %q is not registered", e.Field)
}

// RulePredicateError reports a predicate that panicked or a resolver that
// failed. The rule's result is hidden and the field is marked failed.
type RulePredicateError struct {
	Field string
	Rule  string
	Err   error
}

func (e *RulePredicateError) Error() string {
	return fmt.Sprintf("feedback: rule %q of field %q failed: %v", e.Rule, e.Field, e.Err)
}

func (e *RulePredicateError) Unwrap() error {
	return e.Err
}

func IsDuplicateFieldError(err error) bool {
	var e *DuplicateFieldError
	return errors.As(err, &e)
}

func IsUnknownFieldError(err error) bool {
	var e *UnknownFieldError
	return errors.As(err, &e)
}

func IsRulePredicateError(err error) bool {
	var e *RulePredicateError
	return errors.As(err, &e)
}
