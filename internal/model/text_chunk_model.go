package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type TextChunk struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExtractedTextId uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ClassId         *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentId    *uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex      int        `gorm:"not null"`
	Content         string     `gorm:"type:text;not null"`
	ChunkType       string     `gorm:"type:varchar(20);not null"`
	SectionTitle    *string    `gorm:"type:varchar(255)"`
	WordCount       int
	CharStart       int
	CharEnd         int
	Embedding       *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
}

func (TextChunk) TableName() string {
	return "text_chunks"
}
