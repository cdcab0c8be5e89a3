package document

import (
	"encoding/json"
	"encoding/xml"

	"github.com/erraggy/orgtree/internal/pathexpr"
)

// Element and attribute names of the document format.
const (
	TagTree     = "Tree"
	TagTreeName = "TreeName"
	TagPerson   = pathexpr.KeywordPerson
	TagName     = "name"
	TagChildren = pathexpr.KeywordChildren
	AttrID      = pathexpr.AttrID
)

// Tree is the root of an organization tree.
type Tree struct {
	XMLName xml.Name `xml:"Tree" json:"-" yaml:"-"`

	// ID is assigned by the registry and is never part of the document.
	ID int64 `xml:"-" json:"-" yaml:"-"`

	TreeName *string  `xml:"TreeName,omitempty" json:"treeName,omitempty" yaml:"treeName,omitempty"`
	Persons  []*Person `xml:"person" json:"persons" yaml:"persons"`
}

// Person is a single person record.
type Person struct {
	XMLName xml.Name `xml:"person" json:"-" yaml:"-"`

	ID       string    `xml:"id,attr" json:"id" yaml:"id"`
	Name     *string   `xml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Children *Children `xml:"children,omitempty" json:"children,omitempty" yaml:"children,omitempty"`
}

// Children is a person's child container. It holds only persons.
type Children struct {
	XMLName xml.Name `xml:"children" json:"-" yaml:"-"`

	Persons []*Person `xml:"person" json:"persons" yaml:"persons"`
}

// MarshalJSON renders the container as a plain array of persons.
func (c *Children) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.list())
}

// MarshalYAML renders the container as a plain sequence of persons.
func (c *Children) MarshalYAML() (any, error) {
	return c.list(), nil
}

func (c *Children) list() []*Person {
	if c == nil || c.Persons == nil {
		return []*Person{}
	}
	return c.Persons
}

// Root returns the first top-level person, or nil for an empty tree.
func (t *Tree) Root() *Person {
	if t == nil || len(t.Persons) == 0 {
		return nil
	}
	return t.Persons[0]
}

// NameValue returns the tree name, or "" when absent.
func (t *Tree) NameValue() string {
	if t == nil || t.TreeName == nil {
		return ""
	}
	return *t.TreeName
}

// CountPersons returns the number of persons in the tree.
func (t *Tree) CountPersons() int {
	if t == nil {
		return 0
	}
	return countPersons(t.Persons)
}

// NameValue returns the person's name, or "" when absent.
func (p *Person) NameValue() string {
	if p == nil || p.Name == nil {
		return ""
	}
	return *p.Name
}

// ChildPersons returns the persons of the child container, or nil.
func (p *Person) ChildPersons() []*Person {
	if p == nil || p.Children == nil {
		return nil
	}
	return p.Children.Persons
}

// CountPersons returns the number of persons in the subtree rooted at p,
// including p itself.
func (p *Person) CountPersons() int {
	if p == nil {
		return 0
	}
	return 1 + countPersons(p.ChildPersons())
}

// CountPersons returns the number of persons held by the container,
// including nested ones.
func (c *Children) CountPersons() int {
	if c == nil {
		return 0
	}
	return countPersons(c.Persons)
}

func countPersons(ps []*Person) int {
	n := 0
	for _, p := range ps {
		n += p.CountPersons()
	}
	return n
}

// IndexOf returns the index of the person with the given id, or -1.
func IndexOf(persons []*Person, id string) int {
	id = NormalizeText(id)
	for i, p := range persons {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
