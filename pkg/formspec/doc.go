// Package formspec reads declarative form documents (YAML or JSON) and turns
// them into feedback rule trees plus validity snapshots.
//
// A document lists fields in order. Each field carries its current value,
// HTML-like constraints and feedback rules:
//
//	form: signup
//	lang: en
//	fields:
//	  - name: username
//	    value: jo
//	    constraints: {required: true, min_length: 3}
//	    rules:
//	      - when: tooShort
//	        message: Too short
//	      - when: "*"
//	      - async: {reject: [admin, root], delay: 50ms}
//	        message: Username already taken
//	      - kind: when_valid
//	        message: Looks good!
//
// A rule has exactly one matcher: when (a constraint name or "*"), match or
// not_match (regular expressions searched in the value), check, not_check or
// check_any (lists of named properties: required, has_upper, has_lower,
// has_digit, has_special, email, url, number; shown when all hold, when one
// is missing, or when any holds), equals_field or
// not_equals_field (comparison with another field's current value), async
// (shown when the value is in the reject list, after delay) or group (a
// nested list of rules with its own stop policy). when_valid rules take no
// matcher. kind defaults to error.
//
// Document implements validity.Source: snapshots are computed from the
// field's constraints and current value on every call.
package formspec
