package htmx

import "strings"

// ParseBool reports whether a header value means true.
//
// The comparison is case-insensitive and ignores surrounding whitespace.
// Only "1", "true", "yes" and "on" are true. Everything else, including
// unknown tokens and the empty string, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
