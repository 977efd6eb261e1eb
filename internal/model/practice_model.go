package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PracticeSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MissionId uuid.UUID `gorm:"type:uuid;not null;index"`
	State     string    `gorm:"type:varchar(20);not null"`
	Score     datatypes.JSON
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Items []PracticeItem `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

type PracticeItem struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Prompt         string    `gorm:"type:text;not null"`
	ExpectedAnswer *string   `gorm:"type:text"`
	UserAnswer     *string   `gorm:"type:text"`
	State          string    `gorm:"type:varchar(20);not null"`
	Citations      datatypes.JSON
	Checks         datatypes.JSON
	AnsweredAt     *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (PracticeItem) TableName() string {
	return "practice_items"
}
