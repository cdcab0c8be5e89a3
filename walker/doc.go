// Package walker provides depth-first traversal of organization trees.
//
// Handlers receive each node together with a [WalkContext] carrying the
// node's canonical path expression and depth, so callers never need parent
// pointers to know where they are.
//
// # Quick Start
//
// Collect the names of every person:
//
//	var names []string
//	err := walker.Walk(tree,
//	    walker.WithPersonHandler(func(wc *walker.WalkContext, p *document.Person) walker.Action {
//	        names = append(names, p.NameValue())
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: visit children and siblings normally
//   - [SkipChildren]: skip the current person's subtree, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Post-visit handlers run after a person's subtree has been visited and are
// not called for persons whose children were skipped or when the walk
// stopped.
//
// [WithMaxDepth] bounds the walk: persons deeper than the limit are not
// visited, and [WithPersonSkippedHandler] reports each one cut off.
package walker
