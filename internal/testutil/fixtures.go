// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/validator"
)

// SampleTreeXML is a four-person tree: Alice heads Bob and Carol, and Bob
// heads Dan.
const SampleTreeXML = `<Tree>
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

// MinimalTreeXML is the smallest tree accepted on create.
const MinimalTreeXML = `<Tree><TreeName>T</TreeName><person id="1"><name>A</name></person></Tree>`

// LoadTree parses doc as a complete tree document, failing the test on error.
func LoadTree(t testing.TB, doc string) *document.Tree {
	t.Helper()
	tree, err := validator.LoadTree([]byte(doc), validator.ModeCreate)
	if err != nil {
		t.Fatalf("loading tree: %v", err)
	}
	return tree
}

// SampleTree returns a freshly parsed SampleTreeXML.
func SampleTree(t testing.TB) *document.Tree {
	t.Helper()
	return LoadTree(t, SampleTreeXML)
}

// WriteFile writes content to name inside a per-test temporary directory
// and returns the full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
