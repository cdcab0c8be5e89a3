package validator

import (
	"fmt"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/issues"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/internal/severity"
	"github.com/erraggy/orgtree/orgerrors"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning flags a suspicious but acceptable value
	SeverityWarning = severity.SeverityWarning
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 4
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 4
)

// Mode selects which document shape is expected.
type Mode int

const (
	// ModeCreate expects a complete <Tree> document.
	ModeCreate Mode = iota
	// ModeUpdate expects a partial <Tree> document for a merge update.
	ModeUpdate
	// ModeFragment expects a single <person> subtree.
	ModeFragment
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	case ModeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating a document
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Mode is the mode the document was validated in
	Mode Mode
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// PersonCount is the number of person elements examined
	PersonCount int
}

// Err returns the first error as *orgerrors.ValidationError, or nil when
// the document is valid.
func (r *ValidationResult) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	return &orgerrors.ValidationError{
		Path:    first.Path,
		Field:   first.Field,
		Message: first.Message,
	}
}

// Validator handles organization tree document validation
type Validator struct {
	// Mode selects the expected document shape
	Mode Mode
	// IncludeWarnings determines whether warnings are reported
	IncludeWarnings bool
	// StrictMode reports empty names as errors instead of warnings
	StrictMode bool
}

// New creates a new Validator for mode with default settings
func New(mode Mode) *Validator {
	return &Validator{
		Mode:            mode,
		IncludeWarnings: true,
	}
}

// Check validates root in mode and returns the first error, if any.
func Check(root *document.Element, mode Mode) error {
	return New(mode).Validate(root).Err()
}

// Validate checks root and returns every issue found.
func (v *Validator) Validate(root *document.Element) *ValidationResult {
	result := &ValidationResult{
		Mode:     v.Mode,
		Errors:   make([]ValidationError, 0, defaultErrorCapacity),
		Warnings: make([]ValidationError, 0, defaultWarningCapacity),
	}

	switch {
	case root == nil:
		v.addError(result, "", "document has no root element", withField("root"))
	case v.Mode == ModeFragment:
		if root.Name != document.TagPerson {
			v.addError(result, "", fmt.Sprintf("fragment must be a <%s> element, got <%s>", document.TagPerson, root.Name),
				withField("root"), withLine(root.Line))
			break
		}
		v.validatePersons(result, []*document.Element{root}, "", nil)
	default:
		if root.Name != document.TagTree {
			v.addError(result, "", fmt.Sprintf("root element must be <%s>, got <%s>", document.TagTree, root.Name),
				withField("root"), withLine(root.Line))
			break
		}
		v.validateTree(result, root)
	}

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}
	return result
}

func (v *Validator) validateTree(result *ValidationResult, tree *document.Element) {
	const here = document.TagTree

	v.checkNoAttributes(result, tree, here)
	v.checkNoText(result, tree, here)

	var persons []*document.Element
	treeNames := 0
	for _, c := range tree.Children {
		switch c.Name {
		case document.TagTreeName:
			treeNames++
			if treeNames > 1 {
				v.addError(result, here, fmt.Sprintf("<%s> appears more than once", document.TagTreeName),
					withField(document.TagTreeName), withLine(c.Line))
				continue
			}
			v.validateLeaf(result, c, here)
		case document.TagPerson:
			persons = append(persons, c)
		default:
			v.addError(result, here, fmt.Sprintf("unexpected element <%s>", c.Name),
				withField(c.Name), withLine(c.Line))
		}
	}

	if v.Mode == ModeCreate {
		if treeNames == 0 {
			v.addError(result, here, fmt.Sprintf("missing required <%s>", document.TagTreeName),
				withField(document.TagTreeName), withLine(tree.Line))
		}
		if len(persons) == 0 {
			v.addError(result, here, "tree must contain at least one top-level person",
				withField(document.TagPerson), withLine(tree.Line))
		}
	}

	v.validatePersons(result, persons, here, nil)
}

// validatePersons checks a sibling list: each person and id uniqueness
// among them. prefix anchors locations under the document root; parent is
// the path of the enclosing container.
func (v *Validator) validatePersons(result *ValidationResult, persons []*document.Element, prefix string, parent *pathexpr.Path) {
	seen := make(map[string]bool, len(persons))
	for _, p := range persons {
		id, ok := p.Attr(document.AttrID)
		if ok && id != "" {
			if seen[id] {
				v.addError(result, issues.FormatPath(prefix, parent.Canonical()),
					fmt.Sprintf("duplicate person id %q among siblings", id),
					withField(document.AttrID), withValue(id), withLine(p.Line))
			}
			seen[id] = true
		}
		v.validatePerson(result, p, prefix, parent)
	}
}

func (v *Validator) validatePerson(result *ValidationResult, p *document.Element, prefix string, parent *pathexpr.Path) {
	result.PersonCount++

	id, ok := p.Attr(document.AttrID)
	if !ok || id == "" {
		v.addError(result, issues.FormatPath(prefix, parent.Canonical()), "person is missing its id attribute",
			withField(document.AttrID), withLine(p.Line))
		// Descendant locations cannot be named without an id.
		return
	}

	self := pathexpr.Join(parent, pathexpr.PersonStep(id))
	here := issues.FormatPath(prefix, self.Canonical())

	for _, a := range p.Attrs {
		if a.Name != document.AttrID {
			v.addError(result, here, fmt.Sprintf("unexpected attribute %q", a.Name),
				withField(a.Name), withValue(a.Value), withLine(p.Line))
		}
	}
	v.checkNoText(result, p, here)

	names, containers := 0, 0
	for _, c := range p.Children {
		switch c.Name {
		case document.TagName:
			names++
			if names > 1 {
				v.addError(result, here, fmt.Sprintf("<%s> appears more than once", document.TagName),
					withField(document.TagName), withLine(c.Line))
				continue
			}
			v.validateLeaf(result, c, here)
		case document.TagChildren:
			containers++
			if containers > 1 {
				v.addError(result, here, fmt.Sprintf("<%s> appears more than once", document.TagChildren),
					withField(document.TagChildren), withLine(c.Line))
				continue
			}
			v.validateChildren(result, c, prefix, self.Append(pathexpr.ChildrenStep()))
		default:
			v.addError(result, here, fmt.Sprintf("unexpected element <%s>", c.Name),
				withField(c.Name), withLine(c.Line))
		}
	}
}

func (v *Validator) validateChildren(result *ValidationResult, c *document.Element, prefix string, self *pathexpr.Path) {
	here := issues.FormatPath(prefix, self.Canonical())

	v.checkNoAttributes(result, c, here)
	v.checkNoText(result, c, here)

	persons := make([]*document.Element, 0, len(c.Children))
	for _, gc := range c.Children {
		if gc.Name != document.TagPerson {
			v.addError(result, here, fmt.Sprintf("a <%s> container holds only persons, got <%s>", document.TagChildren, gc.Name),
				withField(gc.Name), withLine(gc.Line))
			continue
		}
		persons = append(persons, gc)
	}
	v.validatePersons(result, persons, prefix, self)
}

// validateLeaf checks a text-only field such as <name> or <TreeName>.
func (v *Validator) validateLeaf(result *ValidationResult, leaf *document.Element, owner string) {
	v.checkNoAttributes(result, leaf, issues.FormatPath(owner, leaf.Name))
	if len(leaf.Children) > 0 {
		v.addError(result, owner, fmt.Sprintf("<%s> must contain only text", leaf.Name),
			withField(leaf.Name), withLine(leaf.Line))
		return
	}
	if leaf.Text == "" {
		msg := fmt.Sprintf("<%s> is empty", leaf.Name)
		if v.StrictMode {
			v.addError(result, owner, msg, withField(leaf.Name), withLine(leaf.Line))
		} else {
			v.addWarning(result, owner, msg, withField(leaf.Name), withLine(leaf.Line))
		}
	}
}

func (v *Validator) checkNoAttributes(result *ValidationResult, e *document.Element, here string) {
	for _, a := range e.Attrs {
		v.addError(result, here, fmt.Sprintf("unexpected attribute %q on <%s>", a.Name, e.Name),
			withField(a.Name), withValue(a.Value), withLine(e.Line))
	}
}

func (v *Validator) checkNoText(result *ValidationResult, e *document.Element, here string) {
	if e.Text != "" {
		v.addError(result, here, fmt.Sprintf("unexpected text in <%s>", e.Name),
			withField(e.Name), withValue(e.Text), withLine(e.Line))
	}
}

// addError appends a validation error.
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	v.addIssue(result, SeverityError, path, message, opts...)
}

// addWarning appends a validation warning.
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	v.addIssue(result, SeverityWarning, path, message, opts...)
}

// addIssue files an issue under Errors when its severity blocks the
// document, and under Warnings otherwise.
func (v *Validator) addIssue(result *ValidationResult, sev Severity, path, message string, opts ...func(*ValidationError)) {
	issue := ValidationError{
		Path:     path,
		Message:  message,
		Severity: sev,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	if sev.IsBlocking() {
		result.Errors = append(result.Errors, issue)
		return
	}
	result.Warnings = append(result.Warnings, issue)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withLine sets the source Line on a ValidationError.
func withLine(line int) func(*ValidationError) {
	return func(e *ValidationError) { e.Line = line }
}
