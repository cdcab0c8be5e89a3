package edit

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/options"
	"github.com/erraggy/orgtree/validator"
)

// Option is a function that configures a merge operation.
type Option func(*mergeConfig) error

// mergeConfig holds configuration for a merge operation.
type mergeConfig struct {
	tree *document.Tree

	// Partial document source (exactly one must be set)
	partial      *document.Tree
	partialBytes []byte

	strictTargets bool
}

// WithTree specifies the tree to merge into.
func WithTree(tree *document.Tree) Option {
	return func(cfg *mergeConfig) error {
		if tree == nil {
			return fmt.Errorf("tree cannot be nil")
		}
		cfg.tree = tree
		return nil
	}
}

// WithPartial specifies an already decoded partial document.
func WithPartial(partial *document.Tree) Option {
	return func(cfg *mergeConfig) error {
		if partial == nil {
			return fmt.Errorf("partial document cannot be nil")
		}
		cfg.partial = partial
		return nil
	}
}

// WithPartialBytes specifies a partial document as raw XML. It is parsed
// and validated in update mode before merging.
func WithPartialBytes(data []byte) Option {
	return func(cfg *mergeConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.partialBytes = data
		return nil
	}
}

// WithStrictTargets enables strict mode where unmatched partial persons
// cause errors.
//
// By default, partial persons that match no existing person are skipped
// with a warning. When strict mode is enabled they cause an error instead.
func WithStrictTargets(strict bool) Option {
	return func(cfg *mergeConfig) error {
		cfg.strictTargets = strict
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*mergeConfig, error) {
	cfg := &mergeConfig{
		strictTargets: false,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.tree == nil {
		return nil, fmt.Errorf("must specify a tree (use WithTree)")
	}
	if err := options.ValidateSingleInputSource(
		options.Source{Option: "WithPartial", Set: cfg.partial != nil},
		options.Source{Option: "WithPartialBytes", Set: cfg.partialBytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergeWithOptions merges a partial document into a tree using functional
// options.
//
// Example:
//
//	result, err := edit.MergeWithOptions(
//	    edit.WithTree(tree),
//	    edit.WithPartialBytes(body),
//	    edit.WithStrictTargets(true),
//	)
func MergeWithOptions(opts ...Option) (*MergeResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("edit: invalid options: %w", err)
	}

	partial := cfg.partial
	if partial == nil {
		partial, err = validator.LoadTree(cfg.partialBytes, validator.ModeUpdate)
		if err != nil {
			return nil, err
		}
	}

	m := &Merger{StrictTargets: cfg.strictTargets}
	return m.Merge(cfg.tree, partial)
}
