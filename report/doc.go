// Package report renders organization trees and subtrees.
//
// A report covers either the whole tree or the subtree addressed by a path
// expression. Scoped reports contain only the addressed node and its
// descendants: ancestors and siblings are never included.
//
// # Formats
//
//   - xml: the document format, indented (default)
//   - json: persons with nested child arrays
//   - yaml: same shape as json
//   - text: an indented outline, one person per line
//
// # Example
//
//	out, err := report.Render(tree, pathexpr.MustParse("person[@id='1']/children"), report.FormatText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(out))
package report
