package vitals

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a value outside of its declared domain (e.g. an activity level of 7).
	// It signals an upstream data bug and is never silently clamped.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyClaimed is returned when claiming an investment that has already been claimed.
	ErrAlreadyClaimed = errors.New("investment already claimed")

	// ErrUnknownScheme is returned when selecting a scoring scheme that does not exist.
	ErrUnknownScheme = errors.New("unknown scoring scheme")
)

// InputError describes which field holds an invalid value.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s=%v", ErrInvalidInput, e.Field, e.Value)
	}
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) true for every InputError.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(field string, value any, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
