package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrNoData is returned when the collector finds nothing for a sector.
	ErrNoData = errors.New("no recent market data found for this sector")
)

type validationError struct {
	Field  string
	Reason string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &validationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err came from input validation.
func IsValidationError(err error) bool {
	var ve *validationError
	return errors.As(err, &ve)
}
