// Package strings holds small string guards shared by platform code
package strings

import "strings"

// IfEmpty returns fallback when v is empty
func IfEmpty[T any](v, fallback []T) []T {
	if len(v) == 0 {
		return fallback
	}
	return v
}

// MustString panics with label when s is blank
func MustString(s, label string) string {
	if strings.TrimSpace(s) == "" {
		panic("missing required " + label)
	}
	return s
}

// MustPrefix panics unless p is a rooted route prefix like "/papers"
func MustPrefix(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") {
		panic("route prefix must start with /: " + p)
	}
	return p
}
