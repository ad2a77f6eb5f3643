// Package variant keeps the set of named variants derived from one master résumé.
package variant

import (
	"errors"
	"fmt"
)

// ErrVariantNotFound is matched by every *NotFoundError via errors.Is
var ErrVariantNotFound = errors.New("variant not found")

// ErrNameRequired is returned when creating or renaming a variant with a blank name
var ErrNameRequired = errors.New("variant name is required")

// NotFoundError reports an operation against a variant id the registry does not hold
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variant not found: %s", e.ID)
}

// Is makes errors.Is(err, ErrVariantNotFound) hold
func (e *NotFoundError) Is(target error) bool {
	return target == ErrVariantNotFound
}

// InvalidEditError reports an edit that is malformed regardless of state,
// such as an entry without a payload
type InvalidEditError struct {
	Message string
}

func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("invalid edit: %s", e.Message)
}
