package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MissionArtifact struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MissionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	BoxId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ArtifactType string    `gorm:"type:varchar(30);not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Content      datatypes.JSON
	SourceRefs   datatypes.JSON
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (MissionArtifact) TableName() string {
	return "mission_artifacts"
}
