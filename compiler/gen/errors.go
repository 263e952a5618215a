// Package gen compiles an annotated object model into per-dialect
// relational schemas.
package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/relgen/compiler/semantics"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a malformed object model.
	ErrInvalidModel = errors.New("relgen: invalid model")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("relgen: missing configuration")
	// ErrInvalidSQLType indicates a type declaration a dialect rejects.
	ErrInvalidSQLType = errors.New("relgen: invalid SQL type")
	// ErrGenerationFailed indicates a unit that could not be compiled.
	ErrGenerationFailed = errors.New("relgen: generation failed")
	// ErrValidationFailed indicates a model that failed validation.
	ErrValidationFailed = errors.New("relgen: validation failed")
	// ErrContextActive is returned when a pass already has a live context.
	ErrContextActive = errors.New("relgen: type resolution context already active")
	// ErrNoContext is returned when a pass has no live context.
	ErrNoContext = errors.New("relgen: no active type resolution context")
)

// ModelError reports a malformed model declaration.
type ModelError struct {
	Pos     semantics.Position
	Name    string // Class, member or type name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("relgen: model error")
	if e.Name != "" {
		b.WriteString(" on ")
		b.WriteString(e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(pos semantics.Position, name, message string, cause error) *ModelError {
	return &ModelError{
		Pos:     pos,
		Name:    name,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Value != nil {
		return fmt.Sprintf("relgen: config error for %q (value: %v): %s", e.Option, e.Value, msg)
	}
	return fmt.Sprintf("relgen: config error for %q: %s", e.Option, msg)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// SQLTypeError reports a committed type declaration that could not be
// resolved. Its text starts with the declaring member's position.
type SQLTypeError struct {
	Pos    semantics.Position
	Member string
	Type   string // Raw declaration text
	Cause  error
}

// Error implements the error interface.
func (e *SQLTypeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": error: ")
	if e.Cause != nil {
		b.WriteString(e.Cause.Error())
	} else {
		fmt.Fprintf(&b, "invalid SQL type %q", e.Type)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SQLTypeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SQLTypeError.
func (e *SQLTypeError) Is(target error) bool {
	return target == ErrInvalidSQLType
}

// NewSQLTypeError creates a new SQLTypeError for the declaration of m.
func NewSQLTypeError(m *semantics.Member, raw string, cause error) *SQLTypeError {
	e := &SQLTypeError{Type: raw, Cause: cause}
	if m != nil {
		e.Pos, e.Member = m.Position, m.Name
	}
	return e
}

// GenerationError represents a unit that failed to compile.
type GenerationError struct {
	Unit    string
	Dialect string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("relgen: generation error")
	if e.Unit != "" {
		b.WriteString(" (unit: ")
		b.WriteString(e.Unit)
		b.WriteString(")")
	}
	if e.Dialect != "" {
		b.WriteString(" for dialect ")
		b.WriteString(e.Dialect)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(unit, dialect, message string, cause error) *GenerationError {
	return &GenerationError{
		Unit:    unit,
		Dialect: dialect,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError reports a unit rejected by the validator.
type ValidationError struct {
	Unit   string
	Errors int // Number of error diagnostics
	Cause  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("relgen: validation error")
	if e.Unit != "" {
		b.WriteString(" (unit: ")
		b.WriteString(e.Unit)
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": %d error(s)", e.Errors)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(unit string, errs int, cause error) *ValidationError {
	return &ValidationError{
		Unit:   unit,
		Errors: errs,
		Cause:  cause,
	}
}

// IsModelError reports whether the error is a ModelError.
func IsModelError(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsSQLTypeError reports whether the error is a SQLTypeError.
func IsSQLTypeError(err error) bool {
	var typeErr *SQLTypeError
	return errors.As(err, &typeErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
