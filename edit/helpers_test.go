package edit

import (
	"testing"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/validator"
	"github.com/stretchr/testify/require"
)

// sampleXML is a three-level tree:
//
//	1 Alice
//	  2 Bob
//	    4 Dan
//	  3 Carol
const sampleXML = `<Tree>
  <TreeName>Acme</TreeName>
  <person id="1">
    <name>Alice</name>
    <children>
      <person id="2">
        <name>Bob</name>
        <children>
          <person id="4"><name>Dan</name></person>
        </children>
      </person>
      <person id="3"><name>Carol</name></person>
    </children>
  </person>
</Tree>`

func sampleTree(t *testing.T) *document.Tree {
	t.Helper()
	tree, err := validator.LoadTree([]byte(sampleXML), validator.ModeCreate)
	require.NoError(t, err)
	return tree
}

func mustPerson(t *testing.T, xml string) *document.Person {
	t.Helper()
	p, err := validator.LoadPerson([]byte(xml))
	require.NoError(t, err)
	return p
}

func path(expr string) *pathexpr.Path {
	return pathexpr.MustParse(expr)
}
