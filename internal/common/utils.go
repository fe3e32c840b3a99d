package common

import "strings"

// ContainsFold reports whether s contains sub, case-insensitively.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// HasAnyFold returns true if s contains any of the substrings,
// case-insensitively.
func HasAnyFold(s string, subs ...string) bool {
	for _, sub := range subs {
		if ContainsFold(s, sub) {
			return true
		}
	}
	return false
}
