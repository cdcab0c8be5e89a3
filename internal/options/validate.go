// Package options provides shared helpers for functional option validation.
package options

import (
	"strings"

	"github.com/erraggy/orgtree/orgerrors"
)

// Source names an input source option and whether it was set.
type Source struct {
	Option string
	Set    bool
}

// ValidateSingleInputSource ensures exactly one of sources is set. The
// error is a *orgerrors.ConfigError naming the candidate options.
func ValidateSingleInputSource(sources ...Source) error {
	names := make([]string, 0, len(sources))
	count := 0
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			count++
		}
	}

	switch {
	case count == 0:
		return &orgerrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(names, " or ") + ")",
		}
	case count > 1:
		return &orgerrors.ConfigError{
			Option:  "input",
			Message: "must specify exactly one input source",
		}
	}
	return nil
}
