package feedback

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// Status tells whether a result is final.
type Status uint8

const (
	StatusResolved Status = iota
	StatusPending
)

func (s Status) String() string {
	if s == StatusPending {
		return "pending"
	}
	return "resolved"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending":
		*s = StatusPending
	case "resolved":
		*s = StatusResolved
	default:
		return fmt.Errorf("feedback: unknown status %q", b)
	}
	return nil
}

// Result is the outcome of one rule in the latest pass.
type Result struct {
	Key     string `json:"key"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
	Show    bool   `json:"show"`
	Status  Status `json:"status"`
	Err     error  `json:"-"`

	identity string
}

// FieldState is a copy of one registry entry.
type FieldState struct {
	Name              string         `json:"name"`
	Snapshot          validity.State `json:"snapshot"`
	Results           []Result       `json:"results"`
	Validated         bool           `json:"validated"`
	RequireValidation bool           `json:"require_validation,omitempty"`
	Pending           int            `json:"pending,omitempty"`
	Epoch             uint64         `json:"epoch"`
	Err               error          `json:"-"`
}

// Shown returns the results currently displayed.
func (f FieldState) Shown() []Result {
	var out []Result
	for _, r := range f.Results {
		if r.Show {
			out = append(out, r)
		}
	}
	return out
}

func (f FieldState) HasFeedbacks() bool {
	return slices.ContainsFunc(f.Results, func(r Result) bool { return r.Show })
}

func (f FieldState) HasErrors() bool   { return f.shows(KindError) }
func (f FieldState) HasWarnings() bool { return f.shows(KindWarning) }
func (f FieldState) HasInfos() bool    { return f.shows(KindInfo) }

// IsValid reports whether the field blocks a submit: pending checks, a
// failed evaluation, a shown error or a required but missing pass do.
func (f FieldState) IsValid() bool {
	switch {
	case f.Pending > 0, f.Err != nil, f.HasErrors():
		return false
	case f.RequireValidation && !f.Validated:
		return false
	}
	return true
}

func (f FieldState) shows(k Kind) bool {
	return slices.ContainsFunc(f.Results, func(r Result) bool { return r.Show && r.Kind == k })
}
