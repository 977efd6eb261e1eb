package entity

import (
	"time"

	"github.com/google/uuid"
)

// TextChunk is one bounded segment of a document's extracted text.
// CharStart/CharEnd index into the original text; adjacent chunks may
// overlap by the chunker's declared overlap window.
type TextChunk struct {
	Id              uuid.UUID
	ExtractedTextId uuid.UUID
	DocumentId      uuid.UUID
	ClassId         *uuid.UUID
	AssignmentId    *uuid.UUID
	ChunkIndex      int
	Content         string
	ChunkType       string
	SectionTitle    *string
	WordCount       int
	CharStart       int
	CharEnd         int
	Embedding       []float32
	CreatedAt       time.Time
}
