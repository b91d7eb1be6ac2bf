package validity

import "errors"

var (
	// ErrUnknownConstraint is returned when a constraint name is not part of
	// the ValidityState vocabulary.
	ErrUnknownConstraint = errors.New("validity: unknown constraint")

	// ErrInvalidLanguage is returned when a catalog declares an unparsable
	// language tag.
	ErrInvalidLanguage = errors.New("validity: invalid language tag")

	// ErrFailedToParseCatalog is returned when catalog data is not valid YAML.
	ErrFailedToParseCatalog = errors.New("validity: failed to parse catalog")
)
