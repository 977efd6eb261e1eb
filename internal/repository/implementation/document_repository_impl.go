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

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var m model.Document
	query := specification.ByID{ID: id}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type ExtractedTextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExtractedTextMapper
}

func NewExtractedTextRepository(db *gorm.DB) contract.ExtractedTextRepository {
	return &ExtractedTextRepositoryImpl{
		db:     db,
		mapper: mapper.NewExtractedTextMapper(),
	}
}

func (r *ExtractedTextRepositoryImpl) Create(ctx context.Context, text *entity.ExtractedText) error {
	m := r.mapper.ToModel(text)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*text = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExtractedTextRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.ExtractedText, error) {
	var m model.ExtractedText
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
