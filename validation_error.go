package formfeedback

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/formfeedback/pkg/feedback"
)

// ValidationError maps field names to the messages of their shown errors.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// Error implements the error interface.
// Fields are listed in name order with their first message.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(e))
	for field, messages := range e {
		if len(messages) > 0 {
			names = append(names, field)
		}
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field][0]))
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// FromFields collects the shown errors of fields. Failed evaluations and
// pending checks are reported too, since both block a submit.
func FromFields(fields []feedback.FieldState) ValidationError {
	e := NewValidationError()
	for _, f := range fields {
		for _, r := range f.Shown() {
			if r.Kind == feedback.KindError {
				e.Add(f.Name, r.Message)
			}
		}
		switch {
		case f.Err != nil:
			e.Add(f.Name, "validation could not complete")
		case f.Pending > 0:
			e.Add(f.Name, "validation in progress")
		case f.RequireValidation && !f.Validated:
			e.Add(f.Name, "not validated")
		}
	}
	return e
}

// Check returns the engine's blocking feedback as a ValidationError, or nil
// when the form may be submitted.
func Check(e *feedback.Engine) error {
	if e.IsValid() {
		return nil
	}
	return FromFields(e.Fields())
}
