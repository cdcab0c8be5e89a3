package registry

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
)

// Option is a function that configures a Registry.
type Option func(*config) error

type config struct {
	store       Store
	logger      document.Logger
	strictMerge bool
}

// WithStore sets the persistence backend.
// Default: a fresh MemoryStore.
func WithStore(s Store) Option {
	return func(cfg *config) error {
		if s == nil {
			return fmt.Errorf("store cannot be nil")
		}
		cfg.store = s
		return nil
	}
}

// WithLogger sets the logger for lifecycle events.
// By default, no logging is performed.
func WithLogger(l document.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithStrictMerge makes Update fail with *orgerrors.NotFoundError when a
// partial document targets a person that does not exist, instead of
// skipping it.
// Default: false
func WithStrictMerge(strict bool) Option {
	return func(cfg *config) error {
		cfg.strictMerge = strict
		return nil
	}
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.store == nil {
		cfg.store = NewMemoryStore()
	}
	if cfg.logger == nil {
		cfg.logger = document.NopLogger{}
	}
	return cfg, nil
}
