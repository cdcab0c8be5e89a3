package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/orgtree/orgerrors"
)

// Resource limits applied while reading documents.
const (
	// MaxDocumentSize is the largest document ParseElement will read.
	MaxDocumentSize int64 = 10 << 20
	// MaxDepth is the deepest element nesting ParseElement accepts.
	MaxDepth = 512
)

// ParseElementBytes parses an XML document held in memory.
func ParseElementBytes(data []byte) (*Element, error) {
	return ParseElement(bytes.NewReader(data))
}

// ParseElement reads a single XML document from r and returns its root
// element. Malformed XML, an empty document, several root elements or text
// outside the root are reported as *orgerrors.ParseError.
func ParseElement(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(io.LimitReader(r, MaxDocumentSize))

	var (
		root  *Element
		stack []*Element
		texts []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, positionedError(dec, "multiple root elements")
			}
			if len(stack) >= MaxDepth {
				return nil, positionedError(dec, fmt.Sprintf("element nesting exceeds %d levels", MaxDepth))
			}
			line, _ := dec.InputPos()
			elem := &Element{Name: t.Name.Local, Line: line}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				elem.Attrs = append(elem.Attrs, Attr{Name: a.Name.Local, Value: NormalizeText(a.Value)})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			// The decoder guarantees start and end tags are balanced.
			n := len(stack) - 1
			stack[n].Text = elementText(texts[n].String())
			stack, texts = stack[:n], texts[:n]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, positionedError(dec, "text outside the root element")
				}
				continue
			}
			texts[len(texts)-1].Write(t)
		}
	}

	if len(stack) > 0 {
		return nil, positionedError(dec, fmt.Sprintf("unclosed element <%s>", stack[len(stack)-1].Name))
	}
	if root == nil {
		return nil, &orgerrors.ParseError{Message: "empty document"}
	}
	return root, nil
}

// elementText keeps text content verbatim. Whitespace-only content is
// layout between elements and counts as no text.
func elementText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func syntaxError(dec *xml.Decoder, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &orgerrors.ParseError{Line: se.Line, Message: se.Msg}
	}
	line, _ := dec.InputPos()
	return &orgerrors.ParseError{Line: line, Message: "malformed document", Cause: err}
}

func positionedError(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &orgerrors.ParseError{Line: line, Message: msg}
}
