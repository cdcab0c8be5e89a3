// Package pathexpr parses the structural path expressions used to address
// nodes inside an organization tree.
//
// Supported syntax:
//   - person[@id='1'] (person selected by its id attribute)
//   - person (the only person at this position)
//   - children (the child container of the current person)
//   - step/step/... (descend one level per step)
//
// Predicate values may be single- or double-quoted strings (backslash
// escapes allowed) or bare integer tokens: person[@id=1] and person[@id='1']
// are equivalent. Only the id attribute is addressable.
package pathexpr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/erraggy/orgtree/orgerrors"
)

// TagKind identifies the element kind a step selects.
type TagKind int

const (
	// TagPerson selects a person node.
	TagPerson TagKind = iota
	// TagChildren selects a person's child container.
	TagChildren
)

// Tag keywords as they appear in expressions and documents.
const (
	KeywordPerson   = "person"
	KeywordChildren = "children"
	AttrID          = "id"
)

// String returns the keyword for the tag.
func (k TagKind) String() string {
	switch k {
	case TagPerson:
		return KeywordPerson
	case TagChildren:
		return KeywordChildren
	default:
		return fmt.Sprintf("TagKind(%d)", int(k))
	}
}

// Predicate is an attribute-equality test narrowing a step to one sibling.
type Predicate struct {
	Attr  string
	Value string
}

// Step is a single navigation step.
type Step struct {
	Tag       TagKind
	Predicate *Predicate
}

// PersonStep returns a step selecting the person with the given id.
func PersonStep(id string) Step {
	return Step{Tag: TagPerson, Predicate: &Predicate{Attr: AttrID, Value: id}}
}

// ChildrenStep returns a step selecting a person's child container.
func ChildrenStep() Step {
	return Step{Tag: TagChildren}
}

// String renders the step in canonical form.
func (s Step) String() string {
	if s.Predicate == nil {
		return s.Tag.String()
	}
	return fmt.Sprintf("%s[@%s=%s]", s.Tag, s.Predicate.Attr, quote(s.Predicate.Value))
}

// Path represents a parsed path expression.
//
// A nil *Path, or one with no steps, addresses the tree root.
type Path struct {
	raw   string
	steps []Step
}

// String returns the original expression, or the canonical form for
// constructed paths.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return p.raw
}

// Steps returns the parsed steps. The slice must not be modified.
func (p *Path) Steps() []Step {
	if p == nil {
		return nil
	}
	return p.steps
}

// Len returns the number of steps.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// IsRoot reports whether the path addresses the tree root.
func (p *Path) IsRoot() bool {
	return p.Len() == 0
}

// Canonical re-renders the path with normalized quoting and no whitespace.
func (p *Path) Canonical() string {
	if p == nil {
		return ""
	}
	return render(p.steps)
}

// Last returns the final step. It panics on a root path.
func (p *Path) Last() Step {
	return p.steps[len(p.steps)-1]
}

// Parent returns the path without its final step. The parent of a
// single-step path is the root path; the parent of the root is nil.
func (p *Path) Parent() *Path {
	if p.Len() == 0 {
		return nil
	}
	return fromSteps(p.steps[:len(p.steps)-1])
}

// Prefix returns the path made of the first n steps.
func (p *Path) Prefix(n int) *Path {
	if n > p.Len() {
		n = p.Len()
	}
	if n < 0 {
		n = 0
	}
	return fromSteps(p.Steps()[:n])
}

// Append returns a new path with step added after the final step.
func (p *Path) Append(step Step) *Path {
	return Join(p, step)
}

// Join returns a new path with steps appended to parent. A nil parent is
// treated as the root.
func Join(parent *Path, steps ...Step) *Path {
	all := make([]Step, 0, parent.Len()+len(steps))
	all = append(all, parent.Steps()...)
	all = append(all, steps...)
	return &Path{raw: render(all), steps: all}
}

func fromSteps(steps []Step) *Path {
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Path{raw: render(cp), steps: cp}
}

func render(steps []Step) string {
	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// quote renders a predicate value, preferring single quotes. Backslashes
// and the chosen quote character are escaped so the result parses back to v.
func quote(v string) string {
	q := byte('\'')
	if strings.ContainsRune(v, '\'') && !strings.ContainsRune(v, '"') {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte(q)
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' || v[i] == q {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte(q)
	return b.String()
}

// Parse parses a path expression string into a Path.
//
// Examples:
//
//	Parse("person[@id='1']")                             // top-level person 1
//	Parse("person[@id='1']/children")                    // its child container
//	Parse("person[@id='1']/children/person[@id='2']")    // a child of person 1
//
// Errors are returned as *orgerrors.ParseError.
func Parse(expr string) (*Path, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &orgerrors.ParseError{Input: expr, Message: "empty expression"}
	}

	p := &parser{input: expr}

	buf := getStepSlice()
	defer putStepSlice(buf)

	if err := p.parse(buf); err != nil {
		return nil, err
	}

	steps := make([]Step, len(*buf))
	copy(steps, *buf)

	return &Path{raw: expr, steps: steps}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// parser is the internal expression parser.
type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &orgerrors.ParseError{
		Input:   p.input,
		Column:  p.pos + 1,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parse(steps *[]Step) error {
	for {
		step, err := p.parseStep()
		if err != nil {
			return err
		}
		*steps = append(*steps, step)

		if p.pos >= len(p.input) {
			return nil
		}
		if !p.consume('/') {
			return p.errorf("unexpected character %q after step", p.peek())
		}
	}
}

func (p *parser) parseStep() (Step, error) {
	if p.pos >= len(p.input) || p.peek() == '/' {
		return Step{}, p.errorf("empty step")
	}

	name := p.parseIdentifier()
	if name == "" {
		return Step{}, p.errorf("unexpected character %q, expected a tag name", p.peek())
	}

	var tag TagKind
	switch name {
	case KeywordPerson:
		tag = TagPerson
	case KeywordChildren:
		tag = TagChildren
	default:
		return Step{}, p.errorf("unknown tag %q", name)
	}

	if p.peek() != '[' {
		return Step{Tag: tag}, nil
	}
	if tag == TagChildren {
		return Step{}, p.errorf("%q does not take a predicate", KeywordChildren)
	}
	p.advance()

	pred, err := p.parsePredicate()
	if err != nil {
		return Step{}, err
	}
	return Step{Tag: tag, Predicate: pred}, nil
}

func (p *parser) parsePredicate() (*Predicate, error) {
	p.skipWhitespace()
	if !p.consume('@') {
		if p.pos >= len(p.input) {
			return nil, p.errorf("unmatched '['")
		}
		return nil, p.errorf("expected '@' in predicate")
	}

	attr := p.parseIdentifier()
	if attr == "" {
		return nil, p.errorf("expected attribute name after '@'")
	}
	if attr != AttrID {
		return nil, p.errorf("unknown attribute %q, only @%s is supported", attr, AttrID)
	}

	p.skipWhitespace()
	if !p.consume('=') {
		return nil, p.errorf("expected '=' after @%s", attr)
	}
	p.skipWhitespace()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if !p.consume(']') {
		if p.pos >= len(p.input) {
			return nil, p.errorf("unmatched '['")
		}
		return nil, p.errorf("expected ']' after predicate value")
	}

	return &Predicate{Attr: attr, Value: value}, nil
}

func (p *parser) parseValue() (string, error) {
	if p.pos >= len(p.input) {
		return "", p.errorf("expected predicate value")
	}

	ch := p.peek()
	if ch == '\'' || ch == '"' {
		p.advance()
		return p.parseQuotedString(ch)
	}

	if isDigit(ch) || ch == '-' {
		start := p.pos
		p.advance()
		for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			p.pos++
		}
		num := p.input[start:p.pos]
		if num == "-" {
			return "", p.errorf("invalid number %q", num)
		}
		return num, nil
	}

	return "", p.errorf("unexpected character %q, expected a quoted value", ch)
}

func (p *parser) parseQuotedString(quote byte) (string, error) {
	var result strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == quote {
			p.pos++
			return result.String(), nil
		}
		if ch == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			result.WriteByte(p.input[p.pos])
			p.pos++
			continue
		}
		result.WriteByte(ch)
		p.pos++
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.advance()
		return true
	}
	return false
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		isDigit(ch) ||
		ch == '_' || ch == '-'
}
