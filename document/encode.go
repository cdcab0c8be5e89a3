package document

import (
	"encoding/xml"
	"fmt"
	"io"
)

const indent = "  "

// MarshalTree renders a tree in the document format with two-space
// indentation.
func MarshalTree(t *Tree) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("document: cannot marshal nil tree")
	}
	return marshal(t)
}

// MarshalPerson renders a single person subtree.
func MarshalPerson(p *Person) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("document: cannot marshal nil person")
	}
	return marshal(p)
}

// MarshalChildren renders a child container and its persons.
func MarshalChildren(c *Children) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("document: cannot marshal nil container")
	}
	return marshal(c)
}

// EncodeTree writes a tree to w in the document format.
func EncodeTree(w io.Writer, t *Tree) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("document: encode tree: %w", err)
	}
	return enc.Close()
}

func marshal(v any) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, fmt.Errorf("document: marshal: %w", err)
	}
	return data, nil
}
