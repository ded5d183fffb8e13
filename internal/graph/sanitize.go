package graph

import "strings"

// Sanitize escapes text for embedding into a single-quoted Cypher string
// literal. Every literal single quote becomes an escaped quote; all other
// characters, including multi-byte runes and emoji, pass through unmodified.
// Empty input maps to the empty string.
//
// This is a minimal injection guard for the fixed query shapes in this
// package, not a general parser-safe encoder: it does not neutralize other
// injection vectors and must not be reused for new user-facing surfaces.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(text, "'", "\\'")
}
