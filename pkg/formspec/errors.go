package formspec

import "errors"

var (
	ErrInvalidDocument  = errors.New("formspec: invalid document")
	ErrInvalidRule      = errors.New("formspec: invalid rule")
	ErrUnknownReference = errors.New("formspec: rule references an unknown field")
	ErrUnknownField     = errors.New("formspec: unknown field")
	ErrUnknownCheck     = errors.New("formspec: unknown check")
)
