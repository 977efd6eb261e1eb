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

type MissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MissionMapper
}

func NewMissionRepository(db *gorm.DB) contract.MissionRepository {
	return &MissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewMissionMapper(),
	}
}

func (r *MissionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MissionRepositoryImpl) Create(ctx context.Context, mission *entity.Mission) error {
	m := r.mapper.ToModel(mission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mission = *r.mapper.ToEntity(m)
	return nil
}

func (r *MissionRepositoryImpl) Update(ctx context.Context, mission *entity.Mission) error {
	m := r.mapper.ToModel(mission)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*mission = *r.mapper.ToEntity(m)
	return nil
}

func (r *MissionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Mission{}, id).Error
}

func (r *MissionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Mission, error) {
	var m model.Mission
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MissionRepositoryImpl) List(ctx context.Context, filter contract.MissionFilter) ([]*entity.Mission, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if filter.ClassId != nil {
		specs = append(specs, specification.ByClassID{ClassID: *filter.ClassId})
	}
	if filter.MissionType != "" {
		specs = append(specs, specification.ByMissionType{MissionType: filter.MissionType})
	}
	if filter.State != "" {
		specs = append(specs, specification.ByMissionState{State: filter.State})
	}

	var models []*model.Mission
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
