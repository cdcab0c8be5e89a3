// Package orgtree manages hierarchical organization trees stored as XML
// documents.
//
// A tree document has a TreeName and a list of person elements. Every person
// carries an id attribute, an optional name, and an optional children
// container holding further persons:
//
//	<Tree>
//	  <TreeName>Acme</TreeName>
//	  <person id="1">
//	    <name>Alice</name>
//	    <children>
//	      <person id="2"><name>Bob</name></person>
//	    </children>
//	  </person>
//	</Tree>
//
// Nodes are addressed with structural path expressions such as
// person[@id='1']/children/person[@id='2'].
//
// # Packages
//
//   - document: the tree model, XML decoding and encoding
//   - validator: shape checks for complete trees, partial updates and fragments
//   - navigator: path resolution against a tree
//   - walker: depth-first traversal with typed handlers
//   - edit: merge updates, node insertion and removal on copies
//   - report: XML, JSON, YAML and text rendering of trees and subtrees
//   - registry: the concurrent id-keyed tree store
//   - orgerrors: the error taxonomy shared by all packages
//
// The cmd/orgtree binary exposes the registry over HTTP (serve), over MCP
// stdio (mcp), and as local file tools (validate, report, paths).
package orgtree
