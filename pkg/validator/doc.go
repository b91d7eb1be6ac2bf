// Package validator provides small, composable value predicates used to
// build form feedback rules and to emulate native input constraint checks.
//
// Every helper returns a Predicate, a plain func(value string) bool. A
// predicate answers "does the value have this property"; whether a true
// answer is rendered as an error, a warning or a confirmation is decided by
// the rule that wraps it (see package feedback).
//
// # Usage
//
//	weak := validator.Not(validator.HasDigit())
//	if weak("abcdef") {
//	    // show "Should contain numbers"
//	}
//
//	short := validator.Not(validator.MinLen(5))
//	both := validator.All(validator.Required(), short)
//
// # Architecture
//
// Each source file groups a family of predicates (`string_rules.go`,
// `format_rules.go`, `pattern_rules.go`, `password_rules.go`,
// `numeric_rules.go`). Predicates carry no state beyond their captured
// arguments, so they are safe for concurrent use.
//
// Pattern helpers compile their expressions once when the predicate is built
// and return the compile error wrapped in ErrInvalidPattern. CompilePattern
// keeps compiled input patterns in a bounded cache.
package validator
