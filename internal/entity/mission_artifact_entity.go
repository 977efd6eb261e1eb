package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MissionArtifact is an immutable output record produced by one box run.
// Content and SourceRefs are typed by the producing stage; the runner itself
// never interprets them.
type MissionArtifact struct {
	Id           uuid.UUID
	MissionId    uuid.UUID
	BoxId        uuid.UUID
	ArtifactType string
	Title        string
	Content      json.RawMessage
	SourceRefs   json.RawMessage
	CreatedAt    time.Time
}
