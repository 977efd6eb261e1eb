package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded source file. Upload and format handling live
// outside this service; the mission engine only reads these rows.
type Document struct {
	Id               uuid.UUID
	OriginalFilename string
	FileType         string
	FileSize         int64
	StoragePath      string
	ClassId          *uuid.UUID
	AssignmentId     *uuid.UUID
	CreatedAt        time.Time
}

type ExtractedText struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	Status     string
	CreatedAt  time.Time
}
