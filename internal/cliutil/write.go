// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool output
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// DisplayPath returns "<stdin>" for StdinPath, otherwise the path as-is.
func DisplayPath(path string) string {
	if path == StdinPath {
		return "<stdin>"
	}
	return path
}

// ReadInput reads at most limit bytes from the file at path, or from stdin
// when path is StdinPath. Inputs larger than limit are rejected.
func ReadInput(path string, stdin io.Reader, limit int64) ([]byte, error) {
	r := stdin
	if path != StdinPath {
		f, err := os.Open(path) //nolint:gosec // G304: operator-supplied input path
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", DisplayPath(path), err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", DisplayPath(path), limit)
	}
	return data, nil
}
