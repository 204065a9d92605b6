// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizeLabel folds a label for case-insensitive comparison:
// control characters dropped, inner whitespace collapsed, lower-cased.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.FieldsFunc(SanitizeText(s), unicode.IsSpace), " "))
}

// ContainsFold reports whether sub occurs in s ignoring case and spacing.
func ContainsFold(s, sub string) bool {
	n := NormalizeLabel(sub)
	if n == "" {
		return false
	}
	return strings.Contains(NormalizeLabel(s), n)
}

// IsBlank reports whether s holds nothing but whitespace or control characters.
func IsBlank(s string) bool { return SanitizeText(s) == "" }
