package textutil

import "strings"

// CleanList trims every entry and drops empties, preserving order.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Ternary returns a when cond is true, otherwise b.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
