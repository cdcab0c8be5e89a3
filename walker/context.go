package walker

import (
	"context"

	"github.com/erraggy/orgtree/internal/pathexpr"
)

// WalkContext provides contextual information about the node being visited.
type WalkContext struct {
	// Path is the canonical path expression of the node. It is nil for the
	// tree root.
	Path *pathexpr.Path

	// Depth is the number of persons on Path: 1 for a top-level person.
	// A children container has the depth of its owner.
	Depth int

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// IsTopLevel reports whether the node is a top-level person.
func (wc *WalkContext) IsTopLevel() bool {
	return wc.Path.Len() == 1
}
