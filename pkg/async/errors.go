package async

import (
	"errors"
	"fmt"
)

// PanicError is the error of a future whose function panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("async: function panicked: %v", e.Value)
}

// IsPanic reports whether err carries a recovered panic.
func IsPanic(err error) bool {
	var p *PanicError
	return errors.As(err, &p)
}
