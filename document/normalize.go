package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and converts s to Unicode NFC.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// SameID reports whether two person ids are equal after normalization.
func SameID(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}
