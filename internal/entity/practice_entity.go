package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PracticeScore is the running aggregate for a session. It is recomputed
// from item states on every checker run, never incremented blindly.
type PracticeScore struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

type PracticeSession struct {
	Id        uuid.UUID
	MissionId uuid.UUID
	State     string
	Score     PracticeScore
	CreatedAt time.Time
}

// ChunkCitation links generated content back to the chunk it came from.
type ChunkCitation struct {
	ChunkId      uuid.UUID `json:"chunk_id"`
	DocumentId   uuid.UUID `json:"document_id"`
	SectionTitle *string   `json:"section_title,omitempty"`
}

type PracticeItem struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	Prompt         string
	ExpectedAnswer *string
	UserAnswer     *string
	State          string
	Citations      []ChunkCitation
	Checks         json.RawMessage
	AnsweredAt     *time.Time
	CreatedAt      time.Time
}
