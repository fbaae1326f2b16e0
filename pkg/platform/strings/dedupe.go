// Package strings provides string helpers for spreadsheet cells.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  White ", "Asian", "White", "", "  "})
//	// Returns: []string{"White", "Asian"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitMulti splits a multi-valued cell ("White;Asian") on sep and returns the
// distinct, trimmed, non-empty parts in their original order.
func SplitMulti(cell, sep string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(cell, sep))
}
