package chunking

import (
	"strings"
	"unicode"
)

const (
	ChunkTypeParagraph = "paragraph"
	ChunkTypeFullText  = "full_text"
)

// Config bounds chunk sizes in characters. OverlapLines is the number of
// trailing lines carried into the next chunk when a max-size split occurs.
type Config struct {
	MinSize      int
	MaxSize      int
	OverlapLines int
}

func DefaultConfig() Config {
	return Config{
		MinSize:      100,
		MaxSize:      800,
		OverlapLines: 3,
	}
}

// Chunk is one bounded segment of the input text. CharStart/CharEnd index
// into the original text; overlap-seeded chunks start at the position of
// their first carried-over line, so adjacent ranges may overlap by the
// configured window.
type Chunk struct {
	Index        int
	Content      string
	Type         string
	SectionTitle *string
	WordCount    int
	CharStart    int
	CharEnd      int
}

// Segment splits text into heading-aware chunks. It is deterministic:
// identical text and config always yield identical chunk boundaries.
func Segment(text string, cfg Config) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	var currentSection *string

	lines := strings.Split(text, "\n")
	var currentLines []string
	currentStart := 0
	charPos := 0

	flush := func(end int) {
		chunkText := strings.Join(currentLines, "\n")
		if len(strings.TrimSpace(chunkText)) >= cfg.MinSize {
			chunks = append(chunks, Chunk{
				Index:        len(chunks),
				Content:      chunkText,
				Type:         ChunkTypeParagraph,
				SectionTitle: currentSection,
				WordCount:    len(strings.Fields(chunkText)),
				CharStart:    currentStart,
				CharEnd:      end,
			})
		}
	}

	for _, line := range lines {
		lineStart := charPos
		charPos += len(line) + 1 // +1 for the newline

		if isHeading(line) {
			if len(currentLines) > 0 {
				flush(lineStart)
			}
			title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
			currentSection = &title
			currentLines = []string{line}
			currentStart = lineStart
			continue
		}

		currentLines = append(currentLines, line)
		chunkText := strings.Join(currentLines, "\n")
		if len(chunkText) >= cfg.MaxSize {
			end := charPos
			if end > len(text) {
				end = len(text)
			}
			chunks = append(chunks, Chunk{
				Index:        len(chunks),
				Content:      chunkText,
				Type:         ChunkTypeParagraph,
				SectionTitle: currentSection,
				WordCount:    len(strings.Fields(chunkText)),
				CharStart:    currentStart,
				CharEnd:      end,
			})

			// seed next chunk with the tail of this one
			overlap := currentLines
			if len(overlap) > cfg.OverlapLines {
				overlap = overlap[len(overlap)-cfg.OverlapLines:]
			}
			carried := 0
			for _, l := range overlap {
				carried += len(l) + 1
			}
			currentLines = append([]string(nil), overlap...)
			currentStart = charPos - carried
		}
	}

	if len(currentLines) > 0 {
		flush(len(text))
	}

	// short or unstructured text collapses to a single chunk
	if len(chunks) == 0 {
		chunks = append(chunks, Chunk{
			Index:     0,
			Content:   text,
			Type:      ChunkTypeFullText,
			WordCount: len(strings.Fields(text)),
			CharStart: 0,
			CharEnd:   len(text),
		})
	}

	return chunks
}

// isHeading flags markdown hashes, mostly-uppercase lines and short
// colon-terminated labels.
func isHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "#") {
		return true
	}

	words := strings.Fields(line)
	if len(words) >= 2 && len(line) >= 10 {
		alpha, upper := 0, 0
		for _, r := range line {
			if unicode.IsLetter(r) {
				alpha++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if alpha > 0 && float64(upper)/float64(alpha) > 0.7 {
			return true
		}
	}

	if strings.HasSuffix(line, ":") && len(line) < 100 && len(words) <= 10 {
		return true
	}

	return false
}
