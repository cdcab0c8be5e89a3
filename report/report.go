package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/walker"
)

// Render renders tree, or the subtree at scope, in format. A nil or empty
// scope renders the whole tree. An unresolved scope yields
// *orgerrors.NotFoundError; an unknown format yields *orgerrors.ConfigError.
func Render(tree *document.Tree, scope *pathexpr.Path, format Format) ([]byte, error) {
	if !format.valid() {
		return nil, unknownFormat(string(format))
	}
	if tree == nil {
		return nil, fmt.Errorf("report: nil tree")
	}
	loc, err := navigator.Resolve(tree, scope)
	if err != nil {
		return nil, err
	}
	return RenderNode(loc, format)
}

// RenderNode renders an already resolved location.
func RenderNode(loc *navigator.Location, format Format) ([]byte, error) {
	if !format.valid() {
		return nil, unknownFormat(string(format))
	}
	if loc == nil {
		return nil, fmt.Errorf("report: nil location")
	}

	node, err := nodeOf(loc)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(node)
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		return data, nil
	case FormatText:
		return renderText(loc)
	default:
		return renderXML(loc)
	}
}

func nodeOf(loc *navigator.Location) (any, error) {
	switch loc.Kind {
	case navigator.KindRoot:
		return loc.Tree, nil
	case navigator.KindPerson:
		return loc.Person, nil
	case navigator.KindChildren:
		return loc.Children, nil
	default:
		return nil, fmt.Errorf("report: cannot render a %s", loc.Kind)
	}
}

func renderXML(loc *navigator.Location) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch loc.Kind {
	case navigator.KindRoot:
		data, err = document.MarshalTree(loc.Tree)
	case navigator.KindPerson:
		data, err = document.MarshalPerson(loc.Person)
	default:
		data, err = document.MarshalChildren(loc.Children)
	}
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return append(data, '\n'), nil
}

// renderText writes one line per person, indented two spaces per level
// below the rendered node.
func renderText(loc *navigator.Location) ([]byte, error) {
	var buf bytes.Buffer
	base := -1

	line := func(wc *walker.WalkContext, p *document.Person) walker.Action {
		if base < 0 {
			base = wc.Depth
		}
		buf.WriteString(strings.Repeat("  ", wc.Depth-base))
		buf.WriteString("- ")
		if p.Name != nil && *p.Name != "" {
			fmt.Fprintf(&buf, "%s (id=%s)\n", *p.Name, p.ID)
		} else {
			fmt.Fprintf(&buf, "(unnamed) (id=%s)\n", p.ID)
		}
		return walker.Continue
	}

	var err error
	switch loc.Kind {
	case navigator.KindRoot:
		err = walker.Walk(loc.Tree,
			walker.WithTreeHandler(func(_ *walker.WalkContext, t *document.Tree) walker.Action {
				name := t.NameValue()
				if name == "" {
					name = "(unnamed tree)"
				}
				buf.WriteString(name + "\n")
				return walker.Continue
			}),
			walker.WithPersonHandler(line),
		)
	case navigator.KindPerson:
		err = walker.WalkPerson(loc.Person, loc.Path.Parent(), walker.WithPersonHandler(line))
	case navigator.KindChildren:
		err = walker.WalkChildren(loc.Children, loc.Path.Parent(), walker.WithPersonHandler(line))
	}
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return buf.Bytes(), nil
}
