package contract

import (
	"context"

	"academic-workflow-be/internal/entity"

	"github.com/google/uuid"
)

type PracticeSessionRepository interface {
	Create(ctx context.Context, session *entity.PracticeSession) error
	Update(ctx context.Context, session *entity.PracticeSession) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error)
	ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.PracticeSession, error)
	DeleteByMission(ctx context.Context, missionId uuid.UUID) error
}

type PracticeItemRepository interface {
	CreateBulk(ctx context.Context, items []*entity.PracticeItem) error
	Update(ctx context.Context, item *entity.PracticeItem) error
	FindByIdInSession(ctx context.Context, itemId, sessionId uuid.UUID) (*entity.PracticeItem, error)
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.PracticeItem, error)
}
