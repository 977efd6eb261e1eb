package implementation

import (
	"context"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/mapper"
	"academic-workflow-be/internal/model"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MissionArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MissionArtifactMapper
}

func NewMissionArtifactRepository(db *gorm.DB) contract.MissionArtifactRepository {
	return &MissionArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewMissionArtifactMapper(),
	}
}

func (r *MissionArtifactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MissionArtifactRepositoryImpl) Create(ctx context.Context, artifact *entity.MissionArtifact) error {
	m := r.mapper.ToModel(artifact)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*artifact = *r.mapper.ToEntity(m)
	return nil
}

func (r *MissionArtifactRepositoryImpl) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionArtifact, error) {
	var models []*model.MissionArtifact
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByMissionID{MissionID: missionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MissionArtifactRepositoryImpl) ListByMissionAndType(ctx context.Context, missionId uuid.UUID, artifactType string) ([]*entity.MissionArtifact, error) {
	var models []*model.MissionArtifact
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByMissionID{MissionID: missionId},
		specification.ByArtifactType{ArtifactType: artifactType},
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MissionArtifactRepositoryImpl) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("mission_id = ?", missionId).Delete(&model.MissionArtifact{}).Error
}
