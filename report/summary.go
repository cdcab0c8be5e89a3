package report

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/walker"
)

// Summary describes a tree for listings.
type Summary struct {
	ID       int64  `json:"id" yaml:"id"`
	TreeName string `json:"treeName" yaml:"treeName"`
	Persons  int    `json:"persons" yaml:"persons"`
	TopLevel int    `json:"topLevel" yaml:"topLevel"`
	MaxDepth int    `json:"maxDepth" yaml:"maxDepth"`
}

// Summarize counts the persons in tree and measures its depth.
func Summarize(tree *document.Tree) (*Summary, error) {
	if tree == nil {
		return nil, fmt.Errorf("report: nil tree")
	}
	collected, err := walker.CollectPersons(tree)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &Summary{
		ID:       tree.ID,
		TreeName: tree.NameValue(),
		Persons:  len(collected.All),
		TopLevel: len(tree.Persons),
		MaxDepth: collected.MaxDepth,
	}, nil
}
