package search

import "strings"

// Normalize lowercases the query, turns hyphens into spaces
// ("side-channel" matches "side channel") and collapses whitespace.
func Normalize(query string) string {
	normalized := strings.ToLower(query)
	normalized = strings.ReplaceAll(normalized, "-", " ")
	return strings.Join(strings.Fields(normalized), " ")
}
