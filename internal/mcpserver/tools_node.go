package mcpserver

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/orgerrors"
	"github.com/erraggy/orgtree/walker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type insertInput struct {
	ID     int64  `json:"id"               jsonschema:"The tree id"`
	Parent string `json:"parent,omitempty" jsonschema:"Path expression of the parent node; empty inserts a top-level person"`
	Node   string `json:"node,omitempty"   jsonschema:"The <person> XML fragment to insert"`
}

type insertOutput struct {
	ID   int64  `json:"id"`
	Node string `json:"node"`
}

func (t *treeTools) handleInsert(_ context.Context, _ *mcp.CallToolRequest, input insertInput) (*mcp.CallToolResult, insertOutput, error) {
	if err := checkInline("node", input.Node); err != nil {
		return errResult(err), insertOutput{}, nil
	}
	out, err := t.reg.InsertNode(input.ID, input.Parent, []byte(input.Node))
	if err != nil {
		return errResult(err), insertOutput{}, nil
	}
	return nil, insertOutput{ID: input.ID, Node: string(out)}, nil
}

type removeInput struct {
	ID   int64  `json:"id"   jsonschema:"The tree id"`
	Path string `json:"path" jsonschema:"Path expression of the person or children container to remove"`
}

type removeOutput struct {
	ID      int64  `json:"id"`
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}

func (t *treeTools) handleRemove(_ context.Context, _ *mcp.CallToolRequest, input removeInput) (*mcp.CallToolResult, removeOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return errResult(&orgerrors.ValidationError{Field: "path", Message: "path is required"}), removeOutput{}, nil
	}
	if err := t.reg.RemoveNode(input.ID, input.Path); err != nil {
		return errResult(err), removeOutput{}, nil
	}
	return nil, removeOutput{ID: input.ID, Path: input.Path, Removed: true}, nil
}

type pathsInput struct {
	ID       int64  `json:"id"                  jsonschema:"The tree id"`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"Do not descend below this depth (1 lists top-level persons only)"`
	GroupBy  string `json:"group_by,omitempty"  jsonschema:"Group results by: depth"`
	Offset   int    `json:"offset,omitempty"    jsonschema:"Skip the first N persons (for pagination)"`
	Limit    int    `json:"limit,omitempty"     jsonschema:"Maximum number of persons to return (default 100)"`
}

type personSummary struct {
	Path  string `json:"path"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Depth int    `json:"depth"`
}

type pathsOutput struct {
	Total    int             `json:"total"`
	Returned int             `json:"returned"`
	Persons  []personSummary `json:"persons,omitempty"`
	Groups   []groupCount    `json:"groups,omitempty"`
}

func (t *treeTools) handlePaths(_ context.Context, _ *mcp.CallToolRequest, input pathsInput) (*mcp.CallToolResult, pathsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"depth"}); err != nil {
		return errResult(err), pathsOutput{}, nil
	}
	tree, err := t.reg.Get(input.ID)
	if err != nil {
		return errResult(err), pathsOutput{}, nil
	}

	var all []personSummary
	err = walker.Walk(tree,
		walker.WithMaxDepth(input.MaxDepth),
		walker.WithPersonHandler(func(wc *walker.WalkContext, p *document.Person) walker.Action {
			all = append(all, personSummary{
				Path:  wc.Path.String(),
				ID:    p.ID,
				Name:  p.NameValue(),
				Depth: wc.Depth,
			})
			return walker.Continue
		}),
	)
	if err != nil {
		return errResult(err), pathsOutput{}, nil
	}

	if input.GroupBy != "" {
		groups := groupAndSort(all, func(p personSummary) []string {
			return []string{strconv.Itoa(p.Depth)}
		})
		return nil, pathsOutput{Total: len(all), Returned: len(groups), Groups: groups}, nil
	}

	page := paginate(all, input.Offset, input.Limit)
	return nil, pathsOutput{Total: len(all), Returned: len(page), Persons: page}, nil
}

type pathValidateInput struct {
	Path string `json:"path"         jsonschema:"The path expression to check"`
	ID   *int64 `json:"id,omitempty" jsonschema:"Optional tree id to resolve the path against"`
}

type pathValidateOutput struct {
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
	Steps     int    `json:"steps"`
	Resolved  *bool  `json:"resolved,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (t *treeTools) handlePathValidate(_ context.Context, _ *mcp.CallToolRequest, input pathValidateInput) (*mcp.CallToolResult, pathValidateOutput, error) {
	path, err := pathexpr.Parse(input.Path)
	if err != nil {
		return nil, pathValidateOutput{Error: sanitizeError(err)}, nil
	}
	output := pathValidateOutput{
		Valid:     true,
		Canonical: path.Canonical(),
		Steps:     path.Len(),
	}
	if input.ID == nil {
		return nil, output, nil
	}

	kind, err := t.reg.Resolve(*input.ID, input.Path)
	resolved := err == nil
	output.Resolved = &resolved
	if err != nil {
		var nf *orgerrors.NotFoundError
		if !errors.As(err, &nf) || nf.Resource == "tree" {
			return errResult(err), pathValidateOutput{}, nil
		}
		output.Error = sanitizeError(err)
		return nil, output, nil
	}
	output.Kind = kind.String()
	return nil, output, nil
}
