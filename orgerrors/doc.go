// Package orgerrors provides structured error types for the orgtree engine.
//
// Import path: github.com/erraggy/orgtree/orgerrors
//
// Every failure the engine reports belongs to one of five categories, and each
// category has a sentinel usable with [errors.Is] and a concrete type usable
// with [errors.As]:
//
//   - [ParseError] / [ErrParse]: malformed path expressions or document syntax
//   - [ValidationError] / [ErrValidation]: well-formed input with the wrong shape
//   - [NotFoundError] / [ErrNotFound]: unknown tree id or unresolvable path
//   - [ConflictError] / [ErrConflict]: duplicate sibling identifier
//   - [ConfigError] / [ErrConfig]: invalid options or configuration
//
// Transports map these categories onto protocol responses:
//
//	switch {
//	case errors.Is(err, orgerrors.ErrNotFound):
//	    c.String(http.StatusNotFound, err.Error())
//	case errors.Is(err, orgerrors.ErrParse), errors.Is(err, orgerrors.ErrValidation):
//	    c.String(http.StatusBadRequest, err.Error())
//	}
//
// All types support chaining through a Cause field and Unwrap.
package orgerrors
