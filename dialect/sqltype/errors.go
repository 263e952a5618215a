package sqltype

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType is matched by every grammar failure.
	ErrInvalidType = errors.New("sqltype: invalid SQL type declaration")
	// ErrInvalidRule is matched by malformed override rules.
	ErrInvalidRule = errors.New("sqltype: invalid custom type rule")
)

// ParseError reports a declaration rejected by a dialect grammar.
type ParseError struct {
	Dialect string
	Input   string
	// Token is the offending token as it appears in Message.
	Token   string
	Message string
}

// Error returns the grammar's explanatory message.
func (e *ParseError) Error() string {
	return e.Message
}

// Is reports whether the target matches ErrInvalidType.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidType
}

// RuleError reports an override rule whose pattern does not compile.
type RuleError struct {
	Index   int
	Pattern string
	Cause   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("sqltype: custom type rule %d (%q): %v", e.Index, e.Pattern, e.Cause)
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidRule.
func (e *RuleError) Is(target error) bool {
	return target == ErrInvalidRule
}
