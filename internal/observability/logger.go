package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/erraggy/orgtree/orgerrors"
)

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, &orgerrors.ConfigError{Option: "log.level", Value: s, Cause: err}
	}
	return level, nil
}

// NewLogger builds a slog.Logger writing to w. format is "text" or "json".
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, &orgerrors.ConfigError{Option: "log.format", Value: format, Message: "expected text or json"}
	}
}
