package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// TreeHandler is called once for the tree root.
type TreeHandler func(wc *WalkContext, tree *document.Tree) Action

// PersonHandler is called for each person before its subtree.
type PersonHandler func(wc *WalkContext, person *document.Person) Action

// PersonPostHandler is called for each person after its subtree.
type PersonPostHandler func(wc *WalkContext, person *document.Person)

// ChildrenHandler is called for each child container, including empty ones.
type ChildrenHandler func(wc *WalkContext, children *document.Children) Action

// PersonSkippedHandler is called for each person not visited because it lies
// below the maximum depth. Its subtree is skipped with it.
type PersonSkippedHandler func(wc *WalkContext, person *document.Person)

// DefaultMaxDepth is the default limit on person nesting.
const DefaultMaxDepth = 1000

// Walker traverses organization trees and calls handlers for each node.
type Walker struct {
	onTree       TreeHandler
	onPerson     PersonHandler
	onPersonPost PersonPostHandler
	onChildren   ChildrenHandler
	onSkipped    PersonSkippedHandler

	maxDepth int
	userCtx  context.Context

	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{maxDepth: DefaultMaxDepth}
}

// Walk traverses the whole tree, visiting top-level persons in order.
func Walk(tree *document.Tree, opts ...Option) error {
	if tree == nil {
		return fmt.Errorf("walker: nil tree")
	}
	w := newWalker(opts)

	if w.onTree != nil {
		switch w.onTree(w.context(nil, 0), tree) {
		case Stop, SkipChildren:
			return nil
		}
	}
	return w.walkPersons(tree.Persons, nil, 0)
}

// WalkPerson traverses the subtree rooted at person. parent is the path of
// the position holding person: nil for a top-level person, or the path of
// the enclosing children container. Depth is counted from the tree root.
func WalkPerson(person *document.Person, parent *pathexpr.Path, opts ...Option) error {
	if person == nil {
		return fmt.Errorf("walker: nil person")
	}
	w := newWalker(opts)
	return w.walkPerson(person, parent, depthOf(parent))
}

// WalkChildren traverses a child container and the persons it holds. owner
// is the path of the person owning the container.
func WalkChildren(children *document.Children, owner *pathexpr.Path, opts ...Option) error {
	if children == nil {
		return fmt.Errorf("walker: nil children container")
	}
	w := newWalker(opts)
	return w.walkChildren(children, pathexpr.Join(owner, pathexpr.ChildrenStep()), depthOf(owner))
}

func newWalker(opts []Option) *Walker {
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// depthOf counts the persons on a path.
func depthOf(p *pathexpr.Path) int {
	n := 0
	for _, s := range p.Steps() {
		if s.Tag == pathexpr.TagPerson {
			n++
		}
	}
	return n
}

func (w *Walker) walkPersons(persons []*document.Person, parent *pathexpr.Path, depth int) error {
	for _, p := range persons {
		if w.stopped {
			return nil
		}
		if err := w.walkPerson(p, parent, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkPerson(p *document.Person, parent *pathexpr.Path, depth int) error {
	if err := w.checkContext(); err != nil {
		return err
	}

	here := pathexpr.Join(parent, pathexpr.PersonStep(p.ID))
	wc := w.context(here, depth+1)

	if depth >= w.maxDepth {
		if w.onSkipped != nil {
			w.onSkipped(wc, p)
		}
		return nil
	}

	if w.onPerson != nil && !w.handleAction(w.onPerson(wc, p)) {
		return nil
	}

	if p.Children != nil {
		if err := w.walkChildren(p.Children, here.Append(pathexpr.ChildrenStep()), depth+1); err != nil {
			return err
		}
	}

	if w.onPersonPost != nil && !w.stopped {
		w.onPersonPost(wc, p)
	}
	return nil
}

func (w *Walker) walkChildren(c *document.Children, here *pathexpr.Path, depth int) error {
	if w.onChildren != nil && !w.handleAction(w.onChildren(w.context(here, depth), c)) {
		return nil
	}
	return w.walkPersons(c.Persons, here, depth)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

func (w *Walker) checkContext() error {
	if w.userCtx == nil {
		return nil
	}
	if err := w.userCtx.Err(); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	return nil
}

func (w *Walker) context(path *pathexpr.Path, depth int) *WalkContext {
	return &WalkContext{Path: path, Depth: depth, ctx: w.userCtx}
}
