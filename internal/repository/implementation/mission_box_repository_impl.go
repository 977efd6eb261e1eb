package implementation

import (
	"context"
	"errors"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/mapper"
	"academic-workflow-be/internal/model"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MissionBoxRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MissionBoxMapper
}

func NewMissionBoxRepository(db *gorm.DB) contract.MissionBoxRepository {
	return &MissionBoxRepositoryImpl{
		db:     db,
		mapper: mapper.NewMissionBoxMapper(),
	}
}

func (r *MissionBoxRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MissionBoxRepositoryImpl) CreateBulk(ctx context.Context, boxes []*entity.MissionBox) error {
	if len(boxes) == 0 {
		return nil
	}
	models := make([]*model.MissionBox, 0, len(boxes))
	for _, b := range boxes {
		models = append(models, r.mapper.ToModel(b))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*boxes[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MissionBoxRepositoryImpl) Update(ctx context.Context, box *entity.MissionBox) error {
	m := r.mapper.ToModel(box)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*box = *r.mapper.ToEntity(m)
	return nil
}

func (r *MissionBoxRepositoryImpl) FindByIdInMission(ctx context.Context, boxId, missionId uuid.UUID) (*entity.MissionBox, error) {
	var m model.MissionBox
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: boxId},
		specification.ByMissionID{MissionID: missionId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MissionBoxRepositoryImpl) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionBox, error) {
	var models []*model.MissionBox
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByMissionID{MissionID: missionId},
		specification.OrderBy{Field: "order_index"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MissionBoxRepositoryImpl) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("mission_id = ?", missionId).Delete(&model.MissionBox{}).Error
}
