package service

import "errors"

// ErrNotFound reports an operation against an id that does not exist (or
// that the caller does not own).
var ErrNotFound = errors.New("not found")

// ValidationError carries a human-readable message for a rejected input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationError(msg string) error { return &ValidationError{msg: msg} }

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
