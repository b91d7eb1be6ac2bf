package validator

import (
	"fmt"
	"regexp"

	"github.com/dmitrymomot/formfeedback/pkg/cache"
)

// patterns caches compiled pattern attributes by source.
var patterns = cache.NewLRU[string, *regexp.Regexp](256)

// CompilePattern compiles an input pattern attribute. Like the HTML pattern
// attribute the expression must match the whole value. Results are cached.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := patterns.GetOrCompute(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile("^(?:" + pattern + ")$")
	})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// CompileContains matches values containing at least one match of expr
// anywhere.
func CompileContains(expr string) (Predicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	return matches(re), nil
}

func matches(re *regexp.Regexp) Predicate {
	return func(value string) bool {
		return re.MatchString(value)
	}
}
