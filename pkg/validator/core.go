package validator

// Predicate reports whether a field value has a given property.
type Predicate func(value string) bool

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(value string) bool {
		return !p(value)
	}
}

// All reports true when every predicate is true. An empty list is true.
func All(ps ...Predicate) Predicate {
	return func(value string) bool {
		for _, p := range ps {
			if !p(value) {
				return false
			}
		}
		return true
	}
}

// Any reports true when at least one predicate is true. An empty list is false.
func Any(ps ...Predicate) Predicate {
	return func(value string) bool {
		for _, p := range ps {
			if p(value) {
				return true
			}
		}
		return false
	}
}

// Equals matches values equal to the string returned by other at evaluation
// time. The callback form lets a rule compare against another field whose
// value changes between passes (password confirmation).
func Equals(other func() string) Predicate {
	return func(value string) bool {
		return value == other()
	}
}

// OneOf matches values that are in the given list.
func OneOf(values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(value string) bool {
		_, ok := set[value]
		return ok
	}
}
