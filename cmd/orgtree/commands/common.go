package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/cliutil"
	"github.com/erraggy/orgtree/internal/config"
	"github.com/erraggy/orgtree/internal/observability"
	"github.com/erraggy/orgtree/internal/storage/badgerstore"
	"github.com/erraggy/orgtree/registry"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"
)

// Output format constants for validate and paths.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", bytes)
	return nil
}

// readInput reads the document at path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	return cliutil.ReadInput(path, cmd.InOrStdin(), document.MaxDocumentSize)
}

// backend is a registry together with the store behind it.
type backend struct {
	reg    *registry.Registry
	badger *badgerstore.Store
}

// openBackend builds the registry described by cfg and restores any
// persisted trees.
func openBackend(cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{}

	var store registry.Store
	if cfg.Storage.InMemory {
		store = registry.NewMemoryStore()
	} else {
		bs, err := badgerstore.Open(badgerstore.Config{
			Path:           cfg.Storage.DataDir,
			SyncWrites:     cfg.Storage.SyncWrites,
			Logger:         logger.With("component", "badger"),
			GCInterval:     cfg.Storage.GCInterval,
			GCDiscardRatio: cfg.Storage.GCDiscardRatio,
		})
		if err != nil {
			return nil, err
		}
		b.badger = bs
		store = bs
	}

	reg, err := registry.New(
		registry.WithStore(store),
		registry.WithLogger(document.NewSlogAdapter(logger)),
		registry.WithStrictMerge(cfg.Registry.StrictMerge),
	)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if _, err := reg.Load(); err != nil {
		_ = b.Close()
		return nil, err
	}
	b.reg = reg
	return b, nil
}

// Close releases the persistent store, if any.
func (b *backend) Close() error {
	if b.badger == nil {
		return nil
	}
	return b.badger.Close()
}

// newLogger builds the process logger from cfg and installs it as the
// slog default.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	logger, err := observability.NewLogger(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
