package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/report"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Listing defaults for tree_list and tree_paths.
	ListLimit int
	MaxLimit  int

	// MaxInlineSize caps the size of documents and fragments passed inline.
	MaxInlineSize int64

	// ReportFormat is used by tree_get and tree_report when no format is given.
	ReportFormat report.Format

	// NoWarnings drops merge warnings from tree_update output by default.
	NoWarnings bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ORGTREE_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ListLimit:     envInt("ORGTREE_MCP_LIST_LIMIT", 100),
		MaxLimit:      envInt("ORGTREE_MCP_MAX_LIMIT", 1000),
		MaxInlineSize: int64(envInt("ORGTREE_MCP_MAX_INLINE_SIZE", int(document.MaxDocumentSize))),
		ReportFormat:  envFormat("ORGTREE_MCP_REPORT_FORMAT", report.FormatXML),
		NoWarnings:    envBool("ORGTREE_MCP_NO_WARNINGS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envFormat(key string, fallback report.Format) report.Format {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := report.ParseFormat(v)
	if err != nil {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return f
}
