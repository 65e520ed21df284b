// Package utils holds small helpers shared by handlers, jobs and commands.
package utils

import "strings"

// ParseCSV splits a comma-separated list and returns the trimmed non-empty values.
// Returns nil for empty or whitespace-only input.
// Used for query filters like ?types=A,B and for list-valued CLI flags.
func ParseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
