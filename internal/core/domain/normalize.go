package domain

import "strings"

// NormalizeEmail canonicalizes an email address for lookup and uniqueness:
// trim surrounding whitespace, lowercase with locale-independent casing.
// An empty result means "missing"; callers validate separately.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeRUN canonicalizes a RUN: every rune that is not a digit or the
// letter K (either case) is stripped, and the result is uppercased. So
// "12.345.678-k" and " 12345678K " both canonicalize to "12345678K".
func NormalizeRUN(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}
	return b.String()
}
