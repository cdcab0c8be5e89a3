package walker

import "github.com/erraggy/orgtree/document"

// PersonInfo contains information about a collected person.
type PersonInfo struct {
	// Person is the collected person.
	Person *document.Person

	// Path is the canonical path expression addressing the person.
	Path string

	// Depth is 1 for top-level persons.
	Depth int
}

// PersonCollector holds persons collected during a walk.
type PersonCollector struct {
	// All contains all persons in document order.
	All []*PersonInfo

	// ByPath provides lookup by canonical path expression.
	ByPath map[string]*PersonInfo

	// MaxDepth is the deepest nesting seen.
	MaxDepth int
}

// CollectPersons walks the tree and collects every person.
func CollectPersons(tree *document.Tree) (*PersonCollector, error) {
	collector := &PersonCollector{
		All:    make([]*PersonInfo, 0),
		ByPath: make(map[string]*PersonInfo),
	}

	err := Walk(tree,
		WithPersonHandler(func(wc *WalkContext, p *document.Person) Action {
			info := &PersonInfo{
				Person: p,
				Path:   wc.Path.String(),
				Depth:  wc.Depth,
			}
			collector.All = append(collector.All, info)
			collector.ByPath[info.Path] = info
			collector.MaxDepth = max(collector.MaxDepth, wc.Depth)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}
