package dto

import (
	"encoding/json"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/pkg/mission/runner"

	"github.com/google/uuid"
)

type CreateMissionRequest struct {
	Name         string     `json:"name" validate:"required"`
	TemplateName string     `json:"template_name" validate:"required"`
	ClassId      *uuid.UUID `json:"class_id"`
	AssignmentId *uuid.UUID `json:"assignment_id"`
}

type CreateMissionResponse struct {
	Id    uuid.UUID            `json:"id"`
	State string               `json:"state"`
	Boxes []MissionBoxResponse `json:"boxes"`
}

type MissionBoxResponse struct {
	Id         uuid.UUID              `json:"id"`
	BoxType    constant.BoxType       `json:"box_type"`
	OrderIndex int                    `json:"order_index"`
	State      string                 `json:"state"`
	LastRunAt  *time.Time             `json:"last_run_at"`
	LastError  *string                `json:"last_error"`
	Config     map[string]interface{} `json:"config"`
}

type MissionResponse struct {
	Id           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	MissionType  string                 `json:"mission_type"`
	State        string                 `json:"state"`
	ClassId      *uuid.UUID             `json:"class_id"`
	AssignmentId *uuid.UUID             `json:"assignment_id"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    *time.Time             `json:"updated_at"`
}

// MissionDetailResponse is the mission plus its boxes, artifacts and
// practice sessions.
type MissionDetailResponse struct {
	MissionResponse
	Boxes     []MissionBoxResponse      `json:"boxes"`
	Artifacts []MissionArtifactResponse `json:"artifacts"`
	Sessions  []PracticeSessionResponse `json:"practice_sessions"`
}

type PracticeSessionResponse struct {
	Id        uuid.UUID            `json:"id"`
	State     string               `json:"state"`
	Score     entity.PracticeScore `json:"score"`
	CreatedAt time.Time            `json:"created_at"`
}

type MissionArtifactResponse struct {
	Id           uuid.UUID       `json:"id"`
	BoxId        uuid.UUID       `json:"box_id"`
	ArtifactType string          `json:"artifact_type"`
	Title        string          `json:"title"`
	Content      json.RawMessage `json:"content"`
	SourceRefs   json.RawMessage `json:"source_refs"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ListMissionsRequest struct {
	ClassId     *uuid.UUID `query:"class_id"`
	MissionType string     `query:"mission_type"`
	State       string     `query:"state"`
}

type UpdateMissionStateRequest struct {
	Id    uuid.UUID
	State string `json:"state" validate:"required"`
}

// RunBoxRequest carries the stage payload as raw JSON; the runner decodes
// it per box type.
type RunBoxRequest struct {
	MissionId uuid.UUID
	BoxId     uuid.UUID
	Payload   json.RawMessage `json:"payload"`
}

type RunBoxResponse struct {
	BoxId     uuid.UUID                `json:"box_id"`
	State     string                   `json:"state"`
	Artifacts []runner.ArtifactSummary `json:"artifacts"`
}

// PublishEmbedChunksMessage asks the consumer to backfill embeddings for
// every chunk of one document.
type PublishEmbedChunksMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
