package search

import (
	"strings"
	"unicode/utf8"
)

const snippetContextChars = 150

// Snippet extracts a context window around the first occurrence of the
// normalized query, or of its first matching term, with ellipses when the
// window cuts into the document. Window edges are clamped to rune
// boundaries so multibyte text never gets split mid-character.
func Snippet(content, query string) string {
	normalized := Normalize(query)
	lowered := strings.ToLower(content)

	idx := strings.Index(lowered, normalized)
	if idx == -1 {
		for _, term := range strings.Fields(normalized) {
			if idx = strings.Index(lowered, term); idx != -1 {
				break
			}
		}
	}

	if idx == -1 {
		if len(content) <= snippetContextChars*2 {
			return content + "..."
		}
		return content[:runeFloor(content, snippetContextChars*2)] + "..."
	}

	start := idx - snippetContextChars
	if start < 0 {
		start = 0
	}
	end := idx + len(normalized) + snippetContextChars
	if end > len(content) {
		end = len(content)
	}
	start = runeFloor(content, start)
	end = runeCeil(content, end)

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}

// runeFloor moves a byte offset back to the start of the rune it lands in.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves a byte offset forward past any rune it would split.
func runeCeil(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
