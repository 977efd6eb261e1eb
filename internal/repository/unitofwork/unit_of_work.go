package unitofwork

import (
	"context"

	"academic-workflow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MissionRepository() contract.MissionRepository
	MissionBoxRepository() contract.MissionBoxRepository
	MissionArtifactRepository() contract.MissionArtifactRepository
	DocumentRepository() contract.DocumentRepository
	ExtractedTextRepository() contract.ExtractedTextRepository
	TextChunkRepository() contract.TextChunkRepository
	PracticeSessionRepository() contract.PracticeSessionRepository
	PracticeItemRepository() contract.PracticeItemRepository
	SearchAliasRepository() contract.SearchAliasRepository
}
