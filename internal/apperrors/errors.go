package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// RematchError reports a correction whose record mutation and audit
// events were stored, but whose re-classification then failed. The
// caller must be able to tell this apart from a failed mutation: the
// audit trail is durable and only the verdict is stale.
type RematchError struct {
	Err error
}

func (e *RematchError) Error() string {
	return fmt.Sprintf("record updated but re-match failed: %v", e.Err)
}

func (e *RematchError) Unwrap() error {
	return e.Err
}
