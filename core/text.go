package core

import (
	"strings"
	"unicode/utf8"
)

// MaxFieldBytes is the longest UTF-8 byte sequence representable by the
// single-byte length prefixes of the binary output formats.
const MaxFieldBytes = 255

// EmbeddingText derives the embedding-input string for a record from its
// optional text fields. A pre-combined field wins when present; otherwise the
// non-empty subset of title, tagline and overview is joined in that order
// with ". ". The result is empty when no field carries text, in which case
// the record must be dropped.
func EmbeddingText(title, tagline, overview, combined string) string {
	if strings.TrimSpace(combined) != "" {
		return combined
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{title, tagline, overview} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ". ")
}

// TruncateUTF8 shortens s to at most maxBytes bytes without splitting a
// multi-byte rune. The result may be shorter than maxBytes when a rune
// boundary forces it.
func TruncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
