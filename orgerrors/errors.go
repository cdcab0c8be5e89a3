package orgerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a path expression or document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a document or fragment has the wrong shape.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an unknown tree or a path that resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an identifier collision between siblings.
	ErrConflict = errors.New("conflict")

	// ErrConfig indicates an invalid configuration or option.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a path expression or a document.
type ParseError struct {
	// Input is the expression or source identifier being parsed
	Input string
	// Column is the 1-based position of the failure within a path expression (0 if unknown)
	Column int
	// Line is the line number within a document (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Input != "" {
		msg += fmt.Sprintf(" in %q", e.Input)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	} else if e.Column > 0 {
		msg += fmt.Sprintf(" at column %d", e.Column)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a document that parsed but does not have the
// required shape.
type ValidationError struct {
	// Path is the location of the problem (e.g., "Tree/person[@id='1']/children")
	Path string
	// Field is the specific element or attribute name with the issue
	Field string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError represents a lookup that matched nothing: an unknown tree id,
// or a path expression that resolved to zero or to several nodes.
type NotFoundError struct {
	// Resource is what was looked up: "tree" or "node"
	Resource string
	// ID is the tree identifier, if known
	ID string
	// Path is the path expression that failed to resolve, if any
	Path string
	// Message provides additional context, such as the failing step
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	resource := e.Resource
	if resource == "" {
		resource = "resource"
	}
	msg := resource + " not found"
	if e.ID != "" {
		msg += ": " + e.ID
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (path %q)", e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError represents an insert whose person id collides with an
// existing sibling.
type ConflictError struct {
	// Path is the location of the sibling list where the collision happened
	Path string
	// ID is the conflicting person identifier
	ID string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	msg := "conflict"
	if e.ID != "" {
		msg += fmt.Sprintf(": duplicate id %q", e.ID)
	}
	if e.Path != "" {
		msg += " under " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConfigError represents an invalid configuration or option value.
type ConfigError struct {
	// Option is the name of the configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
