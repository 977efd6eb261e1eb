package unitofwork

import (
	"context"
	"fmt"

	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil when operating on the base connection
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) MissionRepository() contract.MissionRepository {
	return implementation.NewMissionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MissionBoxRepository() contract.MissionBoxRepository {
	return implementation.NewMissionBoxRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MissionArtifactRepository() contract.MissionArtifactRepository {
	return implementation.NewMissionArtifactRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ExtractedTextRepository() contract.ExtractedTextRepository {
	return implementation.NewExtractedTextRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TextChunkRepository() contract.TextChunkRepository {
	return implementation.NewTextChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PracticeSessionRepository() contract.PracticeSessionRepository {
	return implementation.NewPracticeSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PracticeItemRepository() contract.PracticeItemRepository {
	return implementation.NewPracticeItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SearchAliasRepository() contract.SearchAliasRepository {
	return implementation.NewSearchAliasRepository(u.getDB())
}
