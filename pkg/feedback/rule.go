package feedback

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// Kind is the severity of a rule.
type Kind uint8

const (
	KindError Kind = iota + 1
	KindWarning
	KindInfo
	// KindWhenValid rules are always evaluated and shown only while the
	// field's snapshot is valid.
	KindWhenValid
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindInfo:
		return "info"
	case KindWhenValid:
		return "when_valid"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) valid() bool {
	return k >= KindError && k <= KindWhenValid
}

// ParseKind accepts error, warning, info and when_valid (or whenValid).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return KindError, nil
	case "warning", "warn":
		return KindWarning, nil
	case "info":
		return KindInfo, nil
	case "when_valid", "whenvalid", "valid":
		return KindWhenValid, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidMatcher, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// WildcardName is the matcher name selecting any violation not claimed by an
// earlier sibling constraint rule.
const WildcardName = "*"

type matcherKind uint8

const (
	matchNone matcherKind = iota
	matchConstraint
	matchWildcard
	matchPredicate
	matchAsync
)

// Resolver decides asynchronously whether a rule is shown for value.
type Resolver func(ctx context.Context, value string) (bool, error)

// Matcher selects when a rule is shown. The zero Matcher is invalid.
type Matcher struct {
	kind       matcherKind
	constraint validity.Constraint
	predicate  func(value string) bool
	resolver   Resolver
	name       string
}

// Constraint matches when the snapshot flag c is raised.
// Panics on an unknown constraint name: rule trees are built by code.
func Constraint(c validity.Constraint) Matcher {
	if !c.IsValid() {
		panic(fmt.Errorf("%w: unknown constraint %q", ErrInvalidMatcher, c))
	}
	return Matcher{kind: matchConstraint, constraint: c, name: string(c)}
}

// Wildcard matches an invalid snapshot when no earlier sibling constraint
// rule matched.
func Wildcard() Matcher {
	return Matcher{kind: matchWildcard, name: WildcardName}
}

// ParseMatcher turns "*" or a constraint name into a Matcher.
func ParseMatcher(s string) (Matcher, error) {
	if s == WildcardName {
		return Wildcard(), nil
	}
	c, err := validity.ParseConstraint(s)
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return Constraint(c), nil
}

// Func matches when fn(value) is true. name identifies the predicate across
// rule tree updates; when empty the function's code pointer is used.
func Func(name string, fn func(value string) bool) Matcher {
	if fn == nil {
		return Matcher{}
	}
	return Matcher{kind: matchPredicate, predicate: fn, name: funcName(name, fn)}
}

// Async matches when fn resolves to true. The result is pending until then.
func Async(name string, fn Resolver) Matcher {
	if fn == nil {
		return Matcher{}
	}
	return Matcher{kind: matchAsync, resolver: fn, name: funcName(name, fn)}
}

func funcName(name string, fn any) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("func@%x", reflect.ValueOf(fn).Pointer())
}

func (m Matcher) String() string {
	switch m.kind {
	case matchConstraint, matchWildcard:
		return m.name
	case matchPredicate:
		return "func:" + m.name
	case matchAsync:
		return "async:" + m.name
	}
	return ""
}

// IsAsync reports whether the matcher resolves asynchronously.
func (m Matcher) IsAsync() bool { return m.kind == matchAsync }

// Node is an element of a rule tree: a Rule or a nested Group.
type Node interface {
	node()
}

// Rule is one feedback rule. Build it with Error, Warning, Info or WhenValid.
type Rule struct {
	// Key is an optional stable identity; results of unkeyed rules are keyed
	// by their position in the tree.
	Key     string
	Kind    Kind
	Message string
	Matcher Matcher
}

func (Rule) node() {}

// Error builds an error rule.
func Error(m Matcher, message string) Rule {
	return Rule{Kind: KindError, Matcher: m, Message: message}
}

// Warning builds a warning rule.
func Warning(m Matcher, message string) Rule {
	return Rule{Kind: KindWarning, Matcher: m, Message: message}
}

// Info builds an info rule.
func Info(m Matcher, message string) Rule {
	return Rule{Kind: KindInfo, Matcher: m, Message: message}
}

// WhenValid builds a rule shown only while the field is valid.
func WhenValid(message string) Rule {
	return Rule{Kind: KindWhenValid, Message: message}
}

// WithKey returns a copy of r with a stable key.
func (r Rule) WithKey(key string) Rule {
	r.Key = key
	return r
}

func (r Rule) validate() error {
	if !r.Kind.valid() {
		return fmt.Errorf("%w: invalid kind %d", ErrInvalidMatcher, r.Kind)
	}
	if r.Kind == KindWhenValid {
		if r.Matcher.kind != matchNone {
			return fmt.Errorf("%w: when_valid rules take no matcher", ErrInvalidMatcher)
		}
		return nil
	}
	if r.Matcher.kind == matchNone {
		return fmt.Errorf("%w: %s rule %q has no matcher", ErrInvalidMatcher, r.Kind, r.Message)
	}
	return nil
}

// identity is what makes two rules the same across tree updates.
func (r Rule) identity() string {
	return strings.Join([]string{r.Key, r.Kind.String(), r.Matcher.String(), r.Message}, "\x1f")
}

// StopPolicy decides when a group stops evaluating further rules.
type StopPolicy uint8

const (
	// StopDefault inherits the enclosing group's policy, or the engine's.
	StopDefault StopPolicy = iota
	StopNever
	StopFirst
	StopFirstError
	StopFirstWarning
	StopFirstInfo
)

func (p StopPolicy) String() string {
	switch p {
	case StopDefault:
		return "default"
	case StopNever:
		return "no"
	case StopFirst:
		return "first"
	case StopFirstError:
		return "first-error"
	case StopFirstWarning:
		return "first-warning"
	case StopFirstInfo:
		return "first-info"
	}
	return fmt.Sprintf("stop(%d)", uint8(p))
}

// ParseStopPolicy accepts no, first, first-error, first-warning and
// first-info. The empty string is StopDefault.
func ParseStopPolicy(s string) (StopPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return StopDefault, nil
	case "no", "never", "none":
		return StopNever, nil
	case "first":
		return StopFirst, nil
	case "first-error", "first_error":
		return StopFirstError, nil
	case "first-warning", "first_warning":
		return StopFirstWarning, nil
	case "first-info", "first_info":
		return StopFirstInfo, nil
	}
	return StopDefault, fmt.Errorf("%w: %q", ErrInvalidStopPolicy, s)
}

// halts reports whether shown results already satisfy the policy.
func (p StopPolicy) halts(results []Result) bool {
	if p == StopNever {
		return false
	}
	for _, r := range results {
		if !r.Show {
			continue
		}
		switch p {
		case StopFirst:
			return true
		case StopFirstError:
			if r.Kind == KindError {
				return true
			}
		case StopFirstWarning:
			if r.Kind == KindError || r.Kind == KindWarning {
				return true
			}
		case StopFirstInfo:
			if r.Kind == KindError || r.Kind == KindWarning || r.Kind == KindInfo {
				return true
			}
		}
	}
	return false
}

// Group is an ordered list of rules and nested groups for one field.
// Nested groups leave Field empty or repeat the parent's field.
type Group struct {
	Field string
	Stop  StopPolicy
	// RequireValidation makes the field count as invalid until a pass ran.
	RequireValidation bool
	Nodes             []Node
}

func (Group) node() {}

// For builds a top-level group for field.
func For(field string, nodes ...Node) Group {
	return Group{Field: field, Nodes: nodes}
}

// Nested builds a nested group with its own stop policy.
func Nested(stop StopPolicy, nodes ...Node) Group {
	return Group{Stop: stop, Nodes: nodes}
}

// StopAt returns a copy of g with the given stop policy.
func (g Group) StopAt(p StopPolicy) Group {
	g.Stop = p
	return g
}

// Required returns a copy of g that marks its field as requiring validation.
func (g Group) Required() Group {
	g.RequireValidation = true
	return g
}

func (g Group) validate(field string, nested bool) error {
	if g.Field == "" && !nested {
		return ErrEmptyFieldName
	}
	if g.Field != "" && g.Field != field {
		return fmt.Errorf("%w: group for %q inside %q", ErrGroupFieldMismatch, g.Field, field)
	}
	if g.Stop > StopFirstInfo {
		return fmt.Errorf("%w: %d", ErrInvalidStopPolicy, g.Stop)
	}
	for i, n := range g.Nodes {
		switch n := n.(type) {
		case Rule:
			if err := n.validate(); err != nil {
				return fmt.Errorf("field %q node %d: %w", field, i, err)
			}
		case Group:
			if err := n.validate(field, true); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: field %q node %d is %T", ErrInvalidMatcher, field, i, n)
		}
	}
	return nil
}

// identities lists rule identities of groups in evaluation order.
func identities(groups []Group) []string {
	var out []string
	var walk func(g Group)
	walk = func(g Group) {
		for _, n := range g.Nodes {
			switch n := n.(type) {
			case Rule:
				out = append(out, n.identity())
			case Group:
				out = append(out, fmt.Sprintf("group:%s:%t", n.Stop, n.RequireValidation))
				walk(n)
				out = append(out, "end")
			}
		}
	}
	for _, g := range groups {
		out = append(out, fmt.Sprintf("root:%s:%t", g.Stop, g.RequireValidation))
		walk(g)
	}
	return out
}
