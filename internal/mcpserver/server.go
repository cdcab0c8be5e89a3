// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes organization tree operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/orgtree"
	"github.com/erraggy/orgtree/registry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `orgtree MCP server: creates, edits, and reports on XML organization trees held in a registry.

Trees are addressed by numeric id. Nodes inside a tree are addressed by path expressions such as person[@id='1']/children/person[@id='2']; an empty path means the tree root.

Configuration: defaults are configurable via ORGTREE_MCP_* environment variables set in your MCP client config.

Key settings:
- ORGTREE_MCP_LIST_LIMIT (default: 100): default result limit for tree_list and tree_paths
- ORGTREE_MCP_MAX_LIMIT (default: 1000): upper bound for any limit
- ORGTREE_MCP_MAX_INLINE_SIZE (default: 10485760): largest document accepted inline
- ORGTREE_MCP_REPORT_FORMAT (default: xml): default format for tree_get and tree_report
- ORGTREE_MCP_NO_WARNINGS (default: false): drop merge warnings from tree_update output`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, reg *registry.Registry) error {
	if reg == nil {
		return fmt.Errorf("mcpserver: nil registry")
	}
	server := mcp.NewServer(
		&mcp.Implementation{Name: "orgtree", Version: orgtree.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, reg)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, reg *registry.Registry) {
	t := &treeTools{reg: reg}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_create",
		Description: "Create an organization tree from an XML document with a <Tree> root, a <TreeName>, and one or more <person id=\"...\"> elements. Returns the id assigned to the new tree.",
	}, t.handleCreate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_get",
		Description: "Return a whole tree rendered as xml (default), json, yaml, or text. The default format is configurable via ORGTREE_MCP_REPORT_FORMAT.",
	}, t.handleGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_list",
		Description: "List stored trees with their name, person count, and depth. Use offset/limit to paginate.",
	}, t.handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_update",
		Description: "Merge a partial <Tree> document into an existing tree. Persons are matched by id along their nesting path and only supplied fields change. Unmatched persons are reported as warnings unless strict merging is enabled. Merging never inserts or removes persons.",
	}, t.handleUpdate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_delete",
		Description: "Delete a tree by id.",
	}, t.handleDelete)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "node_insert",
		Description: "Insert a <person> fragment under the node addressed by parent. The parent may be a person (its children container is created when missing), a children container, or the root (empty parent). The id must be unique among its new siblings.",
	}, t.handleInsert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "node_remove",
		Description: "Remove the person or children container addressed by path, including its whole subtree. The root and the last top-level person cannot be removed.",
	}, t.handleRemove)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_report",
		Description: "Render a tree, or the subtree addressed by path, as xml, json, yaml, or text outline.",
	}, t.handleReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree_paths",
		Description: "List the path expression of every person in a tree, in document order. Use max_depth to stop descending, offset/limit to paginate, or group_by=depth to get person counts per depth instead of individual items.",
	}, t.handlePaths)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "path_validate",
		Description: "Check the syntax of a path expression and return its canonical form. When id is given, also resolve the path against that tree and report the kind of node it addresses.",
	}, t.handlePathValidate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
