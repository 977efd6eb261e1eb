package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"markdown hash", "# Introduction", true},
		{"deep markdown hash", "### Wrap Up", true},
		{"all caps title", "CHAPTER ONE OVERVIEW", true},
		{"mostly caps", "THE FSM MODEL explained", false},
		{"short colon label", "Definitions:", true},
		{"long colon sentence", strings.Repeat("word ", 25) + "ends with:", false},
		{"plain sentence", "The theorem states that a^2 + b^2 = c^2.", false},
		{"empty", "", false},
		{"caps but single word", "INTRODUCTION", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeading(tt.line))
		})
	}
}

func TestSegmentEmptyText(t *testing.T) {
	assert.Nil(t, Segment("", DefaultConfig()))
	assert.Nil(t, Segment("   \n\t  ", DefaultConfig()))
}

func TestSegmentShortTextFallsBackToFullText(t *testing.T) {
	text := "A short unstructured note."
	chunks := Segment(text, DefaultConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, ChunkTypeFullText, chunks[0].Type)
	assert.Equal(t, text, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].CharStart)
	assert.Equal(t, len(text), chunks[0].CharEnd)
	assert.Nil(t, chunks[0].SectionTitle)
}

func TestSegmentHeadingStartsNewChunk(t *testing.T) {
	body1 := strings.Repeat("First section prose line with enough text to count. ", 4)
	body2 := strings.Repeat("Second section prose line with enough text to count. ", 4)
	text := "# Alpha\n" + body1 + "\n# Beta\n" + body2

	chunks := Segment(text, DefaultConfig())

	require.Len(t, chunks, 2)
	require.NotNil(t, chunks[0].SectionTitle)
	assert.Equal(t, "Alpha", *chunks[0].SectionTitle)
	require.NotNil(t, chunks[1].SectionTitle)
	assert.Equal(t, "Beta", *chunks[1].SectionTitle)
	assert.True(t, strings.HasPrefix(chunks[0].Content, "# Alpha"))
	assert.True(t, strings.HasPrefix(chunks[1].Content, "# Beta"))
}

func TestSegmentMaxSizeSplitWithOverlap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("Line with a predictable amount of text content here.\n")
	}
	text := sb.String()

	chunks := Segment(text, DefaultConfig())
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		// overlap-seeded chunk starts inside the previous chunk's range
		assert.Less(t, cur.CharStart, prev.CharEnd)
		prevLines := strings.Split(prev.Content, "\n")
		curLines := strings.Split(cur.Content, "\n")
		assert.Equal(t, prevLines[len(prevLines)-1], curLines[0])
	}
}

func TestSegmentCharRanges(t *testing.T) {
	text := "# Title\n" +
		strings.Repeat("Some prose that fills the section with searchable words. ", 20) +
		"\nSummary:\n" +
		strings.Repeat("Closing remarks that also take up meaningful space here. ", 20)

	chunks := Segment(text, DefaultConfig())
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Less(t, c.CharStart, c.CharEnd, "chunk %d", c.Index)
		assert.GreaterOrEqual(t, c.CharStart, 0)
		assert.LessOrEqual(t, c.CharEnd, len(text))
		assert.Equal(t, len(strings.Fields(c.Content)), c.WordCount)
	}
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].Index+1, chunks[i].Index)
	}
}

func TestSegmentDeterminism(t *testing.T) {
	text := "# Chapter\n" +
		strings.Repeat("Deterministic content line used for both invocations.\n", 30) +
		"APPENDIX NOTES\n" +
		strings.Repeat("Trailing appendix content that exceeds the minimum size.\n", 5)

	first := Segment(text, DefaultConfig())
	second := Segment(text, DefaultConfig())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}
