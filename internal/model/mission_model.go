package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Mission struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	MissionType  string    `gorm:"type:varchar(50);not null;index"`
	State        string    `gorm:"type:varchar(20);not null;index"`
	ClassId      *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentId *uuid.UUID `gorm:"type:uuid;index"`
	Metadata     datatypes.JSON
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Mission) TableName() string {
	return "missions"
}
