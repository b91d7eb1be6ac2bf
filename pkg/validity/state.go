package validity

import "fmt"

// Constraint names one ValidityState flag.
type Constraint string

const (
	ValueMissing    Constraint = "valueMissing"
	TooShort        Constraint = "tooShort"
	TooLong         Constraint = "tooLong"
	PatternMismatch Constraint = "patternMismatch"
	TypeMismatch    Constraint = "typeMismatch"
	RangeUnderflow  Constraint = "rangeUnderflow"
	RangeOverflow   Constraint = "rangeOverflow"
	StepMismatch    Constraint = "stepMismatch"
	BadInput        Constraint = "badInput"
	CustomError     Constraint = "customError"
)

// messageOrder is the precedence used to pick State.Message.
var messageOrder = []Constraint{
	CustomError,
	ValueMissing,
	TypeMismatch,
	BadInput,
	PatternMismatch,
	TooLong,
	TooShort,
	RangeUnderflow,
	RangeOverflow,
	StepMismatch,
}

// AllConstraints returns every constraint name in message precedence order.
func AllConstraints() []Constraint {
	out := make([]Constraint, len(messageOrder))
	copy(out, messageOrder)
	return out
}

// IsValid reports whether c is part of the vocabulary.
func (c Constraint) IsValid() bool {
	for _, k := range messageOrder {
		if k == c {
			return true
		}
	}
	return false
}

func (c Constraint) String() string {
	return string(c)
}

// ParseConstraint converts a name into a Constraint.
func ParseConstraint(name string) (Constraint, error) {
	c := Constraint(name)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
	}
	return c, nil
}

// State is a snapshot of one input's constraint validation at one instant.
type State struct {
	Name  string `json:"name"`
	Value string `json:"value"`

	ValueMissing    bool `json:"valueMissing,omitempty"`
	TooShort        bool `json:"tooShort,omitempty"`
	TooLong         bool `json:"tooLong,omitempty"`
	PatternMismatch bool `json:"patternMismatch,omitempty"`
	TypeMismatch    bool `json:"typeMismatch,omitempty"`
	RangeUnderflow  bool `json:"rangeUnderflow,omitempty"`
	RangeOverflow   bool `json:"rangeOverflow,omitempty"`
	StepMismatch    bool `json:"stepMismatch,omitempty"`
	BadInput        bool `json:"badInput,omitempty"`
	CustomError     bool `json:"customError,omitempty"`

	Valid bool `json:"valid"`

	// Message is the native validation message, empty when Valid.
	Message string `json:"message,omitempty"`
}

// New builds a State with the given flags raised. Valid is true iff no flag
// is given.
func New(name, value string, flags ...Constraint) State {
	s := State{Name: name, Value: value}
	for _, f := range flags {
		s.set(f, true)
	}
	s.Valid = len(s.Violations()) == 0
	return s
}

// Has reports whether the flag named c is raised. Unknown names are false.
func (s State) Has(c Constraint) bool {
	switch c {
	case ValueMissing:
		return s.ValueMissing
	case TooShort:
		return s.TooShort
	case TooLong:
		return s.TooLong
	case PatternMismatch:
		return s.PatternMismatch
	case TypeMismatch:
		return s.TypeMismatch
	case RangeUnderflow:
		return s.RangeUnderflow
	case RangeOverflow:
		return s.RangeOverflow
	case StepMismatch:
		return s.StepMismatch
	case BadInput:
		return s.BadInput
	case CustomError:
		return s.CustomError
	}
	return false
}

// Violations lists raised flags in message precedence order.
func (s State) Violations() []Constraint {
	var out []Constraint
	for _, c := range messageOrder {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// WithCustomError mirrors setCustomValidity: a non-empty message raises
// customError and becomes the validation message, an empty one clears it.
func (s State) WithCustomError(message string) State {
	s.CustomError = message != ""
	s.Valid = len(s.Violations()) == 0
	switch {
	case message != "":
		s.Message = message
	case s.Valid:
		s.Message = ""
	}
	return s
}

func (s *State) set(c Constraint, v bool) {
	switch c {
	case ValueMissing:
		s.ValueMissing = v
	case TooShort:
		s.TooShort = v
	case TooLong:
		s.TooLong = v
	case PatternMismatch:
		s.PatternMismatch = v
	case TypeMismatch:
		s.TypeMismatch = v
	case RangeUnderflow:
		s.RangeUnderflow = v
	case RangeOverflow:
		s.RangeOverflow = v
	case StepMismatch:
		s.StepMismatch = v
	case BadInput:
		s.BadInput = v
	case CustomError:
		s.CustomError = v
	}
}
