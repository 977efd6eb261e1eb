package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByMissionID struct {
	MissionID uuid.UUID
}

func (s ByMissionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mission_id = ?", s.MissionID)
}

type ByMissionType struct {
	MissionType string
}

func (s ByMissionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mission_type = ?", s.MissionType)
}

type ByMissionState struct {
	State string
}

func (s ByMissionState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", s.State)
}

type ByClassID struct {
	ClassID uuid.UUID
}

func (s ByClassID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_id = ?", s.ClassID)
}

type ByArtifactType struct {
	ArtifactType string
}

func (s ByArtifactType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("artifact_type = ?", s.ArtifactType)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIDs)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ContentLike matches a case-insensitive substring of the content column.
type ContentLike struct {
	Pattern string
}

func (s ContentLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content ILIKE ?", "%"+s.Pattern+"%")
}
