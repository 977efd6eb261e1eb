package contract

import (
	"context"

	"academic-workflow-be/internal/entity"

	"github.com/google/uuid"
)

// MissionFilter narrows List results; zero values mean "no filter".
type MissionFilter struct {
	ClassId     *uuid.UUID
	MissionType string
	State       string
}

type MissionRepository interface {
	Create(ctx context.Context, mission *entity.Mission) error
	Update(ctx context.Context, mission *entity.Mission) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Mission, error)
	List(ctx context.Context, filter MissionFilter) ([]*entity.Mission, error)
}

type MissionBoxRepository interface {
	CreateBulk(ctx context.Context, boxes []*entity.MissionBox) error
	Update(ctx context.Context, box *entity.MissionBox) error
	FindByIdInMission(ctx context.Context, boxId, missionId uuid.UUID) (*entity.MissionBox, error)
	ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionBox, error)
	DeleteByMission(ctx context.Context, missionId uuid.UUID) error
}

type MissionArtifactRepository interface {
	Create(ctx context.Context, artifact *entity.MissionArtifact) error
	ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionArtifact, error)
	ListByMissionAndType(ctx context.Context, missionId uuid.UUID, artifactType string) ([]*entity.MissionArtifact, error)
	DeleteByMission(ctx context.Context, missionId uuid.UUID) error
}
