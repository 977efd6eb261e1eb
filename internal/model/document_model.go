package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OriginalFilename string    `gorm:"type:varchar(255);not null"`
	FileType         string    `gorm:"type:varchar(50)"`
	FileSize         int64
	StoragePath      string     `gorm:"type:varchar(512)"`
	ClassId          *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentId     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

type ExtractedText struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Content    string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(20)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ExtractedText) TableName() string {
	return "extracted_texts"
}
