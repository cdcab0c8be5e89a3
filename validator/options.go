package validator

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/options"
	"github.com/erraggy/orgtree/orgerrors"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	element *document.Element
	data    []byte

	mode            Mode
	includeWarnings bool
	strictMode      bool
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		mode:            ModeCreate,
		includeWarnings: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		options.Source{Option: "WithElement", Set: cfg.element != nil},
		options.Source{Option: "WithBytes", Set: cfg.data != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateWithOptions validates a document using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithBytes(data),
//	    validator.WithMode(validator.ModeUpdate),
//	)
//
// Malformed XML is returned as an error (*orgerrors.ParseError); shape
// problems are reported in the result.
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	root := cfg.element
	if root == nil {
		root, err = document.ParseElementBytes(cfg.data)
		if err != nil {
			return nil, err
		}
	}

	v := &Validator{
		Mode:            cfg.mode,
		IncludeWarnings: cfg.includeWarnings,
		StrictMode:      cfg.strictMode,
	}
	return v.Validate(root), nil
}

// WithElement specifies an already parsed element as the input source
func WithElement(root *document.Element) Option {
	return func(cfg *validateConfig) error {
		cfg.element = root
		return nil
	}
}

// WithBytes specifies raw XML as the input source
func WithBytes(data []byte) Option {
	return func(cfg *validateConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.data = data
		return nil
	}
}

// WithMode selects the expected document shape
// Default: ModeCreate
func WithMode(mode Mode) Option {
	return func(cfg *validateConfig) error {
		if mode < ModeCreate || mode > ModeFragment {
			return &orgerrors.ConfigError{Option: "mode", Value: int(mode), Message: "unknown validation mode"}
		}
		cfg.mode = mode
		return nil
	}
}

// WithIncludeWarnings enables or disables warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithStrictMode reports empty names as errors
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}
