package services

import (
	"errors"
	"fmt"
)

// Domain failures surfaced to callers. Controllers map these onto HTTP
// status codes; anything else coming out of a service is a persistence
// failure wrapped in ErrPersistence.
var (
	ErrNotFound            = errors.New("not found")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrIllegalState        = errors.New("operation not permitted in current state")
	ErrValidation          = errors.New("validation failed")
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
	ErrPersistence         = errors.New("persistence failure")
)

func notFoundErr(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func persistenceErr(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
