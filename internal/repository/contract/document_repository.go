package contract

import (
	"context"

	"academic-workflow-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error)
}

type ExtractedTextRepository interface {
	Create(ctx context.Context, text *entity.ExtractedText) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.ExtractedText, error)
}
