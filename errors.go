package veneer

import "errors"

// Sentinel errors for schema setup and resolution.
var (
	ErrMissingProp   = errors.New("veneer: required prop missing")
	ErrTypeMismatch  = errors.New("veneer: prop type mismatch")
	ErrValidation    = errors.New("veneer: prop validation failed")
	ErrSlotType      = errors.New("veneer: slot content type mismatch")
	ErrMalformedSpec = errors.New("veneer: malformed part spec")
	ErrImmutable     = errors.New("veneer: props are immutable once resolved")
	ErrNotFound      = errors.New("veneer: not found")
)

// IsSchemaError checks if err is fatal to component construction.
//
// Schema errors (missing required props, type mismatches, failed
// validators, slot kind mismatches) abort setup; the caller typically
// renders a diagnostic placeholder instead of the component.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrMissingProp) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrSlotType)
}

// IsMalformedSpec checks if err reports a malformed attribute or class spec.
// Malformed specs are non-fatal during attribute resolution: the offending
// node resolves to empty output and rendering continues.
func IsMalformedSpec(err error) bool {
	return errors.Is(err, ErrMalformedSpec)
}

// IsNotFound checks if err is a not-found error (unknown registry name,
// unresolvable template).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
