package validator

import (
	"github.com/erraggy/orgtree/document"
)

// LoadTree parses data, validates it in mode and converts it to the typed
// model. Malformed XML yields *orgerrors.ParseError; a document of the wrong
// shape yields *orgerrors.ValidationError.
func LoadTree(data []byte, mode Mode) (*document.Tree, error) {
	root, err := document.ParseElementBytes(data)
	if err != nil {
		return nil, err
	}
	if err := Check(root, mode); err != nil {
		return nil, err
	}
	return document.DecodeTree(root)
}

// LoadPerson parses and validates a single <person> fragment.
func LoadPerson(data []byte) (*document.Person, error) {
	root, err := document.ParseElementBytes(data)
	if err != nil {
		return nil, err
	}
	return LoadPersonElement(root)
}

// LoadPersonElement validates an already parsed <person> fragment.
func LoadPersonElement(root *document.Element) (*document.Person, error) {
	if err := Check(root, ModeFragment); err != nil {
		return nil, err
	}
	return document.DecodePerson(root)
}
