package formspec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/formfeedback/pkg/feedback"
	"github.com/dmitrymomot/formfeedback/pkg/validator"
)

// checks are the named value properties usable in check, not_check and
// check_any.
var checks = map[string]func() validator.Predicate{
	"required":    validator.Required,
	"has_upper":   validator.HasUpper,
	"has_lower":   validator.HasLower,
	"has_digit":   validator.HasDigit,
	"has_special": validator.HasSpecial,
	"email":       validator.Email,
	"url":         validator.URL,
	"number":      validator.Number,
}

func namedChecks(names []string) ([]validator.Predicate, error) {
	out := make([]validator.Predicate, 0, len(names))
	for _, name := range names {
		p, ok := checks[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
		}
		out = append(out, p())
	}
	return out, nil
}

func (d *Document) nodes(field string, specs []RuleSpec, path string) ([]feedback.Node, error) {
	out := make([]feedback.Node, 0, len(specs))
	for i, rs := range specs {
		at := fmt.Sprintf("%s%d", path, i)
		n, err := d.node(field, rs, at)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q rule %s: %w", ErrInvalidRule, field, at, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (d *Document) node(field string, rs RuleSpec, at string) (feedback.Node, error) {
	if rs.Group != nil {
		if rs.matchers() > 1 || rs.Kind != "" || rs.Message != "" {
			return nil, fmt.Errorf("group takes no kind, message or matcher")
		}
		stop, err := feedback.ParseStopPolicy(rs.Group.Stop)
		if err != nil {
			return nil, err
		}
		nodes, err := d.nodes(field, rs.Group.Rules, at+".")
		if err != nil {
			return nil, err
		}
		return feedback.Nested(stop, nodes...), nil
	}

	kind := feedback.KindError
	if rs.Kind != "" {
		k, err := feedback.ParseKind(rs.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	if kind == feedback.KindWhenValid {
		if rs.matchers() != 0 {
			return nil, fmt.Errorf("when_valid takes no matcher")
		}
		return feedback.WhenValid(rs.Message).WithKey(rs.Key), nil
	}
	if rs.matchers() != 1 {
		return nil, fmt.Errorf("exactly one matcher is required, got %d", rs.matchers())
	}

	m, err := d.matcher(rs)
	if err != nil {
		return nil, err
	}
	return feedback.Rule{Key: rs.Key, Kind: kind, Message: rs.Message, Matcher: m}, nil
}

func (rs RuleSpec) matchers() int {
	n := 0
	for _, set := range []bool{
		rs.When != "",
		rs.Match != "",
		rs.NotMatch != "",
		len(rs.Check) > 0,
		len(rs.NotCheck) > 0,
		len(rs.CheckAny) > 0,
		rs.EqualsField != "",
		rs.NotEqualsField != "",
		rs.Async != nil,
		rs.Group != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (d *Document) matcher(rs RuleSpec) (feedback.Matcher, error) {
	switch {
	case rs.When != "":
		return feedback.ParseMatcher(rs.When)

	case rs.Match != "":
		p, err := validator.CompileContains(rs.Match)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("match:"+rs.Match, p), nil

	case rs.NotMatch != "":
		p, err := validator.CompileContains(rs.NotMatch)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("not_match:"+rs.NotMatch, validator.Not(p)), nil

	case len(rs.Check) > 0:
		ps, err := namedChecks(rs.Check)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("check:"+strings.Join(rs.Check, ","), validator.All(ps...)), nil

	case len(rs.NotCheck) > 0:
		ps, err := namedChecks(rs.NotCheck)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("not_check:"+strings.Join(rs.NotCheck, ","), validator.Not(validator.All(ps...))), nil

	case len(rs.CheckAny) > 0:
		ps, err := namedChecks(rs.CheckAny)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("check_any:"+strings.Join(rs.CheckAny, ","), validator.Any(ps...)), nil

	case rs.EqualsField != "":
		p, err := d.equalsField(rs.EqualsField)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("equals_field:"+rs.EqualsField, p), nil

	case rs.NotEqualsField != "":
		p, err := d.equalsField(rs.NotEqualsField)
		if err != nil {
			return feedback.Matcher{}, err
		}
		return feedback.Func("not_equals_field:"+rs.NotEqualsField, validator.Not(p)), nil

	case rs.Async != nil:
		return feedback.Async(fmt.Sprintf("reject:%q:%s", rs.Async.Reject, rs.Async.Delay),
			rejectResolver(rs.Async.Reject, rs.Async.Delay)), nil
	}
	return feedback.Matcher{}, feedback.ErrInvalidMatcher
}

func (d *Document) equalsField(other string) (validator.Predicate, error) {
	if _, ok := d.values[other]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReference, other)
	}
	return validator.Equals(func() string {
		v, _ := d.Value(other)
		return v
	}), nil
}

// rejectResolver shows the rule when value is in reject, after delay.
func rejectResolver(reject []string, delay time.Duration) feedback.Resolver {
	rejected := validator.OneOf(reject...)
	return func(ctx context.Context, value string) (bool, error) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
		return rejected(value), nil
	}
}
