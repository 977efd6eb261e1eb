package entity

import (
	"time"

	"github.com/google/uuid"
)

type Mission struct {
	Id           uuid.UUID
	Name         string
	MissionType  string
	State        string
	ClassId      *uuid.UUID
	AssignmentId *uuid.UUID
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
