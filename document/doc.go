// Package document provides the organization tree document model and its
// XML codec.
//
// Documents are read in two stages. [ParseElement] turns raw XML into a
// generic [Element] tree, reporting malformed input as
// *orgerrors.ParseError with the offending line. The generic tree is then
// checked by the validator package and converted into the closed typed
// model ([Tree], [Person], [Children]) by [DecodeTree] or [DecodePerson].
// Unknown shapes are rejected at this boundary rather than at the point of
// use.
//
// # Document shape
//
//	<Tree>
//	  <TreeName>Engineering</TreeName>
//	  <person id="1">
//	    <name>Ada</name>
//	    <children>
//	      <person id="2"><name>Grace</name></person>
//	    </children>
//	  </person>
//	</Tree>
//
// Optional leaf fields are pointers so a partial document used for a merge
// update can tell an absent field from an empty one.
//
// # Text normalization
//
// Attribute values are trimmed and normalized to Unicode NFC on the way in,
// so ids compare equal regardless of the composition form the client used.
// Leaf text such as names is kept exactly as written; whitespace-only
// content counts as empty.
package document
