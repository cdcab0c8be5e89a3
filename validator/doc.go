// Package validator checks organization tree documents before they are
// admitted.
//
// Validation works on the generic element tree produced by
// document.ParseElement, so every shape problem can be reported with its
// location instead of failing on the first unknown element. A document that
// passes validation always converts cleanly with document.DecodeTree or
// document.DecodePerson.
//
// # Modes
//
//   - [ModeCreate]: a whole <Tree> for a new tree. <TreeName> and at least one
//     top-level person are required.
//   - [ModeUpdate]: a partial <Tree> for a merge update. Every field is
//     optional.
//   - [ModeFragment]: a single <person> subtree for insertion.
//
// # Validation Rules
//
//   - the root element matches the mode
//   - every person has a non-empty id attribute, unique among its siblings
//   - a children container holds only persons
//   - no unknown elements or attributes
//   - at most one <TreeName> per tree, one <name> and one <children> per person
//   - text appears only in <TreeName> and <name>
//
// Empty <name> and <TreeName> values are warnings, or errors in strict mode.
//
// # Usage
//
//	root, err := document.ParseElementBytes(data)
//	if err != nil {
//	    return err
//	}
//	if err := validator.Check(root, validator.ModeCreate); err != nil {
//	    return err // *orgerrors.ValidationError
//	}
package validator
