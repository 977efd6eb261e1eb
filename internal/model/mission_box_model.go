package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MissionBox struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MissionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	BoxType    string    `gorm:"type:varchar(30);not null"`
	OrderIndex int       `gorm:"not null"`
	State      string    `gorm:"type:varchar(20);not null"`
	LastRunAt  *time.Time
	LastError  *string `gorm:"type:text"`
	Config     datatypes.JSON
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (MissionBox) TableName() string {
	return "mission_boxes"
}
