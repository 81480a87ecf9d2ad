// Package apperr defines the application error taxonomy shared by services
// and handlers. Validation failures carry a field name so the API can answer
// with per-field messages; permission and not-found failures stay generic so
// responses never leak whether an entity exists.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden means the principal is unauthenticated or its role does
	// not allow the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the entity does not exist or is not visible to the
	// principal. Callers must not distinguish the two cases.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a failed business-rule check on a named field. An empty
// Field means the error applies to the request as a whole.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
