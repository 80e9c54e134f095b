package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Is understands marks added by Mark; the std errors.Is does not.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// ErrValidation groups entity-level field errors so handlers can map them to 400 in one place.
var ErrValidation = New("validation failed")

// Invalid marks err as a validation error while keeping its own identity.
func Invalid(err error) error {
	return Mark(err, ErrValidation)
}
