// Package filter holds the list-narrowing rules shared by every entity.
package filter

import "strings"

// All is the selector value that disables an equality filter.
const All = "all"

// Matches reports whether term occurs, case-insensitively, in any field.
// An empty term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Selects reports whether value passes the selector. An empty selector or
// All passes everything.
func Selects(selector, value string) bool {
	if selector == "" || selector == All {
		return true
	}
	return selector == value
}

// Apply returns the elements of items for which keep is true, preserving order.
func Apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
