// Package apperr defines the error kinds every domain sentinel wraps.
package apperr

import "errors"

var (
	// ErrNotFound indicates the referenced entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation indicates the operation would break an invariant.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates the actor's role does not permit the action.
	ErrForbidden = errors.New("forbidden")
)

// Kind returns the taxonomy error wrapped by err, or nil if err is outside it.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalidOperation, ErrInvalidInput, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
