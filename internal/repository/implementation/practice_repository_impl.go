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

type PracticeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PracticeMapper
}

func NewPracticeSessionRepository(db *gorm.DB) contract.PracticeSessionRepository {
	return &PracticeSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPracticeMapper(),
	}
}

func (r *PracticeSessionRepositoryImpl) Create(ctx context.Context, session *entity.PracticeSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *PracticeSessionRepositoryImpl) Update(ctx context.Context, session *entity.PracticeSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *PracticeSessionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error) {
	var m model.PracticeSession
	query := specification.ByID{ID: id}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *PracticeSessionRepositoryImpl) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.PracticeSession, error) {
	var models []*model.PracticeSession
	query := specification.ByMissionID{MissionID: missionId}.Apply(r.db.WithContext(ctx))
	query = specification.OrderBy{Field: "created_at", Desc: true}.Apply(query)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	sessions := make([]*entity.PracticeSession, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, r.mapper.SessionToEntity(m))
	}
	return sessions, nil
}

// DeleteByMission removes the mission's sessions together with their
// items; items never outlive their session.
func (r *PracticeSessionRepositoryImpl) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	sessionIds := r.db.Model(&model.PracticeSession{}).Select("id").Where("mission_id = ?", missionId)
	if err := r.db.WithContext(ctx).Where("session_id IN (?)", sessionIds).Delete(&model.PracticeItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("mission_id = ?", missionId).Delete(&model.PracticeSession{}).Error
}

type PracticeItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PracticeMapper
}

func NewPracticeItemRepository(db *gorm.DB) contract.PracticeItemRepository {
	return &PracticeItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewPracticeMapper(),
	}
}

func (r *PracticeItemRepositoryImpl) CreateBulk(ctx context.Context, items []*entity.PracticeItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.PracticeItem, 0, len(items))
	for _, it := range items {
		models = append(models, r.mapper.ItemToModel(it))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ItemToEntity(m)
	}
	return nil
}

func (r *PracticeItemRepositoryImpl) Update(ctx context.Context, item *entity.PracticeItem) error {
	m := r.mapper.ItemToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ItemToEntity(m)
	return nil
}

func (r *PracticeItemRepositoryImpl) FindByIdInSession(ctx context.Context, itemId, sessionId uuid.UUID) (*entity.PracticeItem, error) {
	var m model.PracticeItem
	query := specification.ByID{ID: itemId}.Apply(r.db.WithContext(ctx))
	query = specification.BySessionID{SessionID: sessionId}.Apply(query)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ItemToEntity(&m), nil
}

func (r *PracticeItemRepositoryImpl) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.PracticeItem, error) {
	var models []*model.PracticeItem
	query := specification.BySessionID{SessionID: sessionId}.Apply(r.db.WithContext(ctx))
	query = specification.OrderBy{Field: "created_at"}.Apply(query)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ItemsToEntities(models), nil
}
