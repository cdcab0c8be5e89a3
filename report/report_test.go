package report

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/edit"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/orgerrors"
	"github.com/erraggy/orgtree/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

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

func TestConcreteScenario(t *testing.T) {
	tree := &document.Tree{
		TreeName: document.Ptr("T"),
		Persons:  []*document.Person{{ID: "1", Name: document.Ptr("A")}},
	}

	inserted, err := edit.Insert(tree, pathexpr.MustParse("person[@id='1']/children"),
		&document.Person{ID: "2", Name: document.Ptr("B")})
	require.NoError(t, err)

	scoped, err := Render(inserted.Tree, pathexpr.MustParse("person[@id='1']/children/person[@id='2']"), FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "<person id=\"2\">\n  <name>B</name>\n</person>\n", string(scoped))

	full, err := Render(inserted.Tree, nil, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, `<Tree>
  <TreeName>T</TreeName>
  <person id="1">
    <name>A</name>
    <children>
      <person id="2">
        <name>B</name>
      </person>
    </children>
  </person>
</Tree>
`, string(full))
}

func TestRenderScopeExcludesAncestorsAndSiblings(t *testing.T) {
	tree := sampleTree(t)

	out, err := Render(tree, pathexpr.MustParse("person[@id='1']/children/person[@id='2']"), FormatXML)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Bob")
	assert.Contains(t, s, "Dan")
	assert.NotContains(t, s, "Alice")
	assert.NotContains(t, s, "Carol")
	assert.NotContains(t, s, "Acme")
}

func TestRenderWholeTreeIncludesEveryone(t *testing.T) {
	tree := sampleTree(t)
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			out, err := Render(tree, nil, f)
			require.NoError(t, err)
			for _, name := range []string{"Alice", "Bob", "Carol", "Dan"} {
				assert.Contains(t, string(out), name)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	tree := sampleTree(t)
	out, err := Render(tree, pathexpr.MustParse("person[@id='1']/children/person[@id='2']"), FormatJSON)
	require.NoError(t, err)

	var got struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Children []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, "Bob", got.Name)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Dan", got.Children[0].Name)
}

func TestRenderJSONChildrenIsArray(t *testing.T) {
	tree := sampleTree(t)
	out, err := Render(tree, pathexpr.MustParse("person[@id='1']/children"), FormatJSON)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0]["name"])
	assert.Equal(t, "Carol", got[1]["name"])
}

func TestRenderYAML(t *testing.T) {
	tree := sampleTree(t)
	out, err := Render(tree, nil, FormatYAML)
	require.NoError(t, err)

	var got struct {
		TreeName string `yaml:"treeName"`
		Persons  []struct {
			ID       string `yaml:"id"`
			Name     string `yaml:"name"`
			Children []struct {
				ID string `yaml:"id"`
			} `yaml:"children"`
		} `yaml:"persons"`
	}
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "Acme", got.TreeName)
	require.Len(t, got.Persons, 1)
	assert.Equal(t, "Alice", got.Persons[0].Name)
	assert.Len(t, got.Persons[0].Children, 2)
}

func TestRenderText(t *testing.T) {
	tree := sampleTree(t)

	out, err := Render(tree, nil, FormatText)
	require.NoError(t, err)
	assert.Equal(t, `Acme
- Alice (id=1)
  - Bob (id=2)
    - Dan (id=4)
  - Carol (id=3)
`, string(out))

	out, err = Render(tree, pathexpr.MustParse("person[@id='1']/children/person[@id='2']"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "- Bob (id=2)\n  - Dan (id=4)\n", string(out))

	out, err = Render(tree, pathexpr.MustParse("person[@id='1']/children"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "- Bob (id=2)\n  - Dan (id=4)\n- Carol (id=3)\n", string(out))
}

func TestRenderErrors(t *testing.T) {
	tree := sampleTree(t)

	_, err := Render(tree, pathexpr.MustParse("person[@id='9']"), FormatXML)
	assert.True(t, errors.Is(err, orgerrors.ErrNotFound))

	_, err = Render(tree, nil, Format("pdf"))
	assert.True(t, errors.Is(err, orgerrors.ErrConfig))

	_, err = Render(nil, nil, FormatXML)
	assert.Error(t, err)

	_, err = RenderNode(nil, FormatXML)
	assert.Error(t, err)
}

func TestRenderNode(t *testing.T) {
	tree := sampleTree(t)
	loc, err := navigator.Resolve(tree, pathexpr.MustParse("person[@id='1']/children/person[@id='3']"))
	require.NoError(t, err)

	out, err := RenderNode(loc, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "<person id=\"3\">\n  <name>Carol</name>\n</person>\n", string(out))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatXML, false},
		{"XML", FormatXML, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"txt", FormatText, false},
		{"text", FormatText, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, orgerrors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/xml; charset=utf-8", FormatXML.ContentType())
	assert.Equal(t, "application/json; charset=utf-8", FormatJSON.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", FormatText.ContentType())
}

func TestSummarize(t *testing.T) {
	tree := sampleTree(t)
	tree.ID = 7

	s, err := Summarize(tree)
	require.NoError(t, err)
	assert.Equal(t, &Summary{ID: 7, TreeName: "Acme", Persons: 4, TopLevel: 1, MaxDepth: 3}, s)

	_, err = Summarize(nil)
	assert.Error(t, err)
}
