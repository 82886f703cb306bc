package history

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLabel is used when an evaluation is recorded without a label.
const DefaultLabel = "local"

// ValidateLabel rejects empty labels, invalid UTF-8 and control characters.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("invalid label: label cannot be empty")
	}
	if !utf8.ValidString(label) {
		return fmt.Errorf("invalid label: contains invalid encoding")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid label: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeLabel strips control and zero-width characters that CI systems
// tend to leak into job names, and trims surrounding whitespace.
func SanitizeLabel(label string) string {
	out := make([]rune, 0, len(label))
	for _, r := range label {
		if unicode.IsControl(r) {
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			continue
		}
		out = append(out, r)
	}
	return strings.TrimSpace(string(out))
}
