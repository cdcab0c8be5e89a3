package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/orgtree/registry"
	"github.com/erraggy/orgtree/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// treeTools binds the tool handlers to a registry.
type treeTools struct {
	reg *registry.Registry
}

// checkInline rejects inline documents above cfg.MaxInlineSize.
func checkInline(field, content string) error {
	if content == "" {
		return fmt.Errorf("%s is required", field)
	}
	if int64(len(content)) > cfg.MaxInlineSize {
		return fmt.Errorf("%s exceeds maximum inline size of %d bytes", field, cfg.MaxInlineSize)
	}
	return nil
}

// resolveFormat returns the requested format, or cfg.ReportFormat when empty.
func resolveFormat(name string) (report.Format, error) {
	if name == "" {
		return cfg.ReportFormat, nil
	}
	return report.ParseFormat(name)
}

type createInput struct {
	Document string `json:"document" jsonschema:"The XML tree document, with a <Tree> root element"`
}

type createOutput struct {
	ID       int64  `json:"id"`
	TreeName string `json:"tree_name"`
	Persons  int    `json:"persons"`
}

func (t *treeTools) handleCreate(_ context.Context, _ *mcp.CallToolRequest, input createInput) (*mcp.CallToolResult, createOutput, error) {
	if err := checkInline("document", input.Document); err != nil {
		return errResult(err), createOutput{}, nil
	}
	id, err := t.reg.Create([]byte(input.Document))
	if err != nil {
		return errResult(err), createOutput{}, nil
	}
	tree, err := t.reg.Get(id)
	if err != nil {
		return errResult(err), createOutput{}, nil
	}
	return nil, createOutput{ID: id, TreeName: tree.NameValue(), Persons: tree.CountPersons()}, nil
}

type getInput struct {
	ID     int64  `json:"id"               jsonschema:"The tree id"`
	Format string `json:"format,omitempty" jsonschema:"Output format: xml, json, yaml, or text"`
}

type documentOutput struct {
	ID       int64  `json:"id"`
	Path     string `json:"path,omitempty"`
	Format   string `json:"format"`
	Document string `json:"document"`
}

func (t *treeTools) handleGet(_ context.Context, _ *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, documentOutput, error) {
	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}
	data, err := t.reg.Document(input.ID, format)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}
	return nil, documentOutput{ID: input.ID, Format: string(format), Document: string(data)}, nil
}

type listInput struct {
	Offset int `json:"offset,omitempty" jsonschema:"Skip the first N trees (for pagination)"`
	Limit  int `json:"limit,omitempty"  jsonschema:"Maximum number of trees to return (default 100)"`
}

type listOutput struct {
	Total    int               `json:"total"`
	Returned int               `json:"returned"`
	Trees    []*report.Summary `json:"trees,omitempty"`
}

func (t *treeTools) handleList(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	summaries, err := t.reg.List()
	if err != nil {
		return errResult(err), listOutput{}, nil
	}
	page := paginate(summaries, input.Offset, input.Limit)
	return nil, listOutput{Total: len(summaries), Returned: len(page), Trees: page}, nil
}

type updateInput struct {
	ID         int64  `json:"id"                    jsonschema:"The tree id"`
	Document   string `json:"document"              jsonschema:"A partial XML tree document carrying only the fields to change"`
	NoWarnings *bool  `json:"no_warnings,omitempty" jsonschema:"Suppress warnings for unmatched persons"`
}

type updateOutput struct {
	ID       int64    `json:"id"`
	Changed  bool     `json:"changed"`
	Matched  int      `json:"matched"`
	Skipped  int      `json:"skipped"`
	Changes  []string `json:"changes,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (t *treeTools) handleUpdate(_ context.Context, _ *mcp.CallToolRequest, input updateInput) (*mcp.CallToolResult, updateOutput, error) {
	noWarnings := cfg.NoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	if err := checkInline("document", input.Document); err != nil {
		return errResult(err), updateOutput{}, nil
	}

	result, err := t.reg.Update(input.ID, []byte(input.Document))
	if err != nil {
		return errResult(err), updateOutput{}, nil
	}

	output := updateOutput{
		ID:      input.ID,
		Changed: result.HasChanges(),
		Matched: result.Matched,
		Skipped: result.Skipped,
	}
	output.Changes = makeSlice[string](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, c.String())
	}
	if !noWarnings {
		output.Warnings = result.Warnings
	}
	return nil, output, nil
}

type deleteInput struct {
	ID int64 `json:"id" jsonschema:"The tree id"`
}

type deleteOutput struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

func (t *treeTools) handleDelete(_ context.Context, _ *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, deleteOutput, error) {
	if err := t.reg.Delete(input.ID); err != nil {
		return errResult(err), deleteOutput{}, nil
	}
	return nil, deleteOutput{ID: input.ID, Deleted: true}, nil
}

type reportInput struct {
	ID     int64  `json:"id"               jsonschema:"The tree id"`
	Path   string `json:"path,omitempty"   jsonschema:"Path expression of the subtree to render; empty renders the whole tree"`
	Format string `json:"format,omitempty" jsonschema:"Output format: xml, json, yaml, or text"`
}

func (t *treeTools) handleReport(_ context.Context, _ *mcp.CallToolRequest, input reportInput) (*mcp.CallToolResult, documentOutput, error) {
	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}
	data, err := t.reg.Report(input.ID, input.Path, format)
	if err != nil {
		return errResult(err), documentOutput{}, nil
	}
	return nil, documentOutput{
		ID:       input.ID,
		Path:     input.Path,
		Format:   string(format),
		Document: string(data),
	}, nil
}
