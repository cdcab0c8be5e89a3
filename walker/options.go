package walker

import "context"

// Option configures the Walker.
type Option func(*Walker)

// WithTreeHandler sets the handler for the tree root.
func WithTreeHandler(fn TreeHandler) Option {
	return func(w *Walker) { w.onTree = fn }
}

// WithPersonHandler sets the handler called before each person's subtree.
func WithPersonHandler(fn PersonHandler) Option {
	return func(w *Walker) { w.onPerson = fn }
}

// WithPersonPostHandler sets the handler called after each person's subtree.
func WithPersonPostHandler(fn PersonPostHandler) Option {
	return func(w *Walker) { w.onPersonPost = fn }
}

// WithChildrenHandler sets the handler for child containers.
func WithChildrenHandler(fn ChildrenHandler) Option {
	return func(w *Walker) { w.onChildren = fn }
}

// WithPersonSkippedHandler sets the handler for persons below the maximum
// depth.
func WithPersonSkippedHandler(fn PersonSkippedHandler) Option {
	return func(w *Walker) { w.onSkipped = fn }
}

// WithMaxDepth sets the maximum person depth visited; deeper persons are
// skipped together with their subtrees. Top-level persons have depth 1.
// If depth is not positive, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context checked for cancellation between persons.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) { w.userCtx = ctx }
}
