package formspec

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formfeedback/pkg/feedback"
	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// AsyncSpec declares a simulated remote check.
type AsyncSpec struct {
	Reject []string      `yaml:"reject" json:"reject"`
	Delay  time.Duration `yaml:"delay,omitempty" json:"delay,omitempty"`
}

// GroupSpec is a nested list of rules.
type GroupSpec struct {
	Stop  string     `yaml:"stop,omitempty" json:"stop,omitempty"`
	Rules []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec is one rule as written in a document.
type RuleSpec struct {
	Key     string `yaml:"key,omitempty" json:"key,omitempty"`
	Kind    string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	When           string     `yaml:"when,omitempty" json:"when,omitempty"`
	Match          string     `yaml:"match,omitempty" json:"match,omitempty"`
	NotMatch       string     `yaml:"not_match,omitempty" json:"not_match,omitempty"`
	Check          []string   `yaml:"check,omitempty" json:"check,omitempty"`
	NotCheck       []string   `yaml:"not_check,omitempty" json:"not_check,omitempty"`
	CheckAny       []string   `yaml:"check_any,omitempty" json:"check_any,omitempty"`
	EqualsField    string     `yaml:"equals_field,omitempty" json:"equals_field,omitempty"`
	NotEqualsField string     `yaml:"not_equals_field,omitempty" json:"not_equals_field,omitempty"`
	Async          *AsyncSpec `yaml:"async,omitempty" json:"async,omitempty"`
	Group          *GroupSpec `yaml:"group,omitempty" json:"group,omitempty"`
}

// FieldSpec is one field as written in a document.
type FieldSpec struct {
	Name              string               `yaml:"name" json:"name"`
	Value             string               `yaml:"value" json:"value"`
	Constraints       validity.Constraints `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Stop              string               `yaml:"stop,omitempty" json:"stop,omitempty"`
	RequireValidation bool                 `yaml:"require_validation,omitempty" json:"require_validation,omitempty"`
	Rules             []RuleSpec           `yaml:"rules" json:"rules"`
}

// Document is a parsed form. Values may change through SetValue; everything
// else is fixed after Parse. Safe for concurrent use.
type Document struct {
	Form   string      `yaml:"form" json:"form"`
	Lang   string      `yaml:"lang,omitempty" json:"lang,omitempty"`
	Stop   string      `yaml:"stop,omitempty" json:"stop,omitempty"`
	Fields []FieldSpec `yaml:"fields" json:"fields"`

	mu      sync.RWMutex
	values  map[string]string
	groups  []feedback.Group
	checker validity.Checker
}

// Parse decodes a YAML or JSON document and builds its rule tree.
func Parse(r io.Reader) (*Document, error) {
	d := &Document{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

// Load parses the document stored at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Document) build() error {
	d.values = make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field without name", ErrInvalidDocument)
		}
		if _, dup := d.values[f.Name]; dup {
			return &feedback.DuplicateFieldError{Field: f.Name}
		}
		d.values[f.Name] = f.Value
	}

	docStop, err := feedback.ParseStopPolicy(d.Stop)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	d.groups = make([]feedback.Group, 0, len(d.Fields))
	for _, f := range d.Fields {
		stop, err := feedback.ParseStopPolicy(f.Stop)
		if err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrInvalidDocument, f.Name, err)
		}
		if stop == feedback.StopDefault {
			stop = docStop
		}
		nodes, err := d.nodes(f.Name, f.Rules, "")
		if err != nil {
			return err
		}
		d.groups = append(d.groups, feedback.Group{
			Field:             f.Name,
			Stop:              stop,
			RequireValidation: f.RequireValidation,
			Nodes:             nodes,
		})
	}

	d.checker = validity.Checker{Lang: d.Lang}
	return nil
}

// Groups returns the rule tree of the document, one group per field.
func (d *Document) Groups() []feedback.Group {
	return slices.Clone(d.groups)
}

// Names lists field names in document order.
func (d *Document) Names() []string {
	out := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Apply reconciles e with the document's rule tree.
func (d *Document) Apply(e *feedback.Engine) error {
	return e.Reconcile(d.groups)
}

// Value returns the current value of a field.
func (d *Document) Value(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.values[name]
	return v, ok
}

// SetValue changes the current value of a field.
func (d *Document) SetValue(name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	d.values[name] = value
	return nil
}

// Snapshot computes the validity of a field's current value.
func (d *Document) Snapshot(name string) (validity.State, bool) {
	i := slices.IndexFunc(d.Fields, func(f FieldSpec) bool { return f.Name == name })
	if i < 0 {
		return validity.State{}, false
	}
	value, _ := d.Value(name)
	return d.checker.Check(name, value, d.Fields[i].Constraints), true
}
