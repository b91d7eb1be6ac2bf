package validity

import (
	"strconv"
	"unicode/utf8"

	"github.com/dmitrymomot/formfeedback/pkg/validator"
)

// InputType is the subset of input types whose syntax is checked.
type InputType string

const (
	TypeText     InputType = "text"
	TypePassword InputType = "password"
	TypeEmail    InputType = "email"
	TypeURL      InputType = "url"
	TypeNumber   InputType = "number"
)

// Constraints are the HTML-like validation attributes of an input.
// Nil pointers mean "attribute not set".
type Constraints struct {
	Type      InputType `yaml:"type,omitempty" json:"type,omitempty"`
	Required  bool      `yaml:"required,omitempty" json:"required,omitempty"`
	MinLength *int      `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength *int      `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Pattern   string    `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Min       *float64  `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64  `yaml:"max,omitempty" json:"max,omitempty"`
	Step      *float64  `yaml:"step,omitempty" json:"step,omitempty"`

	// CustomError is the setCustomValidity message; empty means none.
	CustomError string `yaml:"custom_error,omitempty" json:"custom_error,omitempty"`
}

// Checker computes States, localizing messages through Catalog.
// The zero value uses DefaultCatalog and English.
type Checker struct {
	Catalog *Catalog
	Lang    string
}

// Check computes the State of value under c with the default checker.
func (c Constraints) Check(name, value string) State {
	return Checker{}.Check(name, value, c)
}

// Check computes the State of value under c.
//
// Like a browser, length, pattern, type and range constraints only apply to
// non-empty values; an empty value can only be valueMissing. Invalid pattern
// attributes are ignored.
func (ch Checker) Check(name, value string, c Constraints) State {
	s := State{Name: name, Value: value}
	length := utf8.RuneCountInString(value)

	if c.Required && !validator.NonEmpty()(value) {
		s.ValueMissing = true
	}

	if value != "" {
		if c.MinLength != nil && !validator.MinLen(*c.MinLength)(value) {
			s.TooShort = true
		}
		if c.MaxLength != nil && !validator.MaxLen(*c.MaxLength)(value) {
			s.TooLong = true
		}
		if c.Pattern != "" {
			if re, err := validator.CompilePattern(c.Pattern); err == nil && !re.MatchString(value) {
				s.PatternMismatch = true
			}
		}

		switch c.Type {
		case TypeEmail:
			s.TypeMismatch = !validator.Email()(value)
		case TypeURL:
			s.TypeMismatch = !validator.URL()(value)
		case TypeNumber:
			s.BadInput = !validator.Number()(value)
		}

		if !s.BadInput && (c.Type == TypeNumber || c.Min != nil || c.Max != nil || c.Step != nil) {
			if validator.Number()(value) {
				if c.Min != nil && !validator.MinNum(*c.Min)(value) {
					s.RangeUnderflow = true
				}
				if c.Max != nil && !validator.MaxNum(*c.Max)(value) {
					s.RangeOverflow = true
				}
				if c.Step != nil {
					base := 0.0
					if c.Min != nil {
						base = *c.Min
					}
					s.StepMismatch = !validator.StepOf(base, *c.Step)(value)
				}
			}
		}
	}

	s.CustomError = c.CustomError != ""
	s.Valid = len(s.Violations()) == 0

	if !s.Valid {
		s.Message = ch.message(s, c, length)
	}
	return s
}

func (ch Checker) message(s State, c Constraints, length int) string {
	if s.CustomError {
		return c.CustomError
	}

	cat := ch.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}

	args := Args{"length": strconv.Itoa(length)}
	if c.MinLength != nil {
		args["min"] = strconv.Itoa(*c.MinLength)
	}
	if c.MaxLength != nil {
		args["max"] = strconv.Itoa(*c.MaxLength)
	}
	if c.Min != nil {
		args["min"] = formatFloat(*c.Min)
	}
	if c.Max != nil {
		args["max"] = formatFloat(*c.Max)
	}
	if c.Step != nil {
		args["step"] = formatFloat(*c.Step)
	}
	if c.Type != "" {
		args["type"] = string(c.Type)
	}

	return cat.Message(ch.Lang, s.Violations()[0], args)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
