package relgen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared by the compiler packages and their callers.
var (
	// ErrNoMapping is returned when a host type has no database type in a
	// dialect and none was declared explicitly.
	ErrNoMapping = errors.New("relgen: no database type mapping")

	// ErrFailed is returned when a unit produced error diagnostics. The
	// diagnostics themselves have already been reported.
	ErrFailed = errors.New("relgen: compilation failed")
)

// MappingError reports a host type with no database type.
type MappingError struct {
	Type    string
	Product string // Database product, e.g. "SQL Server"
}

// Error returns the error string.
func (e *MappingError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("relgen: no %s database type for an untyped member", e.Product)
	}
	return fmt.Sprintf("relgen: unable to map type '%s' to a %s database type", e.Type, e.Product)
}

// Is reports whether the target error matches MappingError.
// This allows errors.Is(mappingErr, ErrNoMapping) to return true.
func (e *MappingError) Is(err error) bool {
	return err == ErrNoMapping
}

// NewMappingError returns a new MappingError for the given host type.
func NewMappingError(typ, product string) *MappingError {
	return &MappingError{Type: typ, Product: product}
}

// IsNoMapping returns true if the error reports a missing type mapping.
func IsNoMapping(err error) bool {
	if err == nil {
		return false
	}
	var e *MappingError
	return errors.As(err, &e) || errors.Is(err, ErrNoMapping)
}

// IsFailed returns true if the error reports a unit that failed with
// diagnostics.
func IsFailed(err error) bool {
	return err != nil && errors.Is(err, ErrFailed)
}
