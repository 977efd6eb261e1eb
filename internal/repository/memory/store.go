package memory

import (
	"context"
	"sync"
	"time"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is an in-process backend used when no database connection is
// configured, and as the repository double in tests. It satisfies both
// unitofwork.RepositoryFactory and unitofwork.UnitOfWork; Begin, Commit
// and Rollback are no-ops since every mutation is applied immediately.
type Store struct {
	mu sync.RWMutex

	missions  []*entity.Mission
	boxes     []*entity.MissionBox
	artifacts []*entity.MissionArtifact
	documents []*entity.Document
	texts     []*entity.ExtractedText
	chunks    []*entity.TextChunk
	sessions  []*entity.PracticeSession
	items     []*entity.PracticeItem
	aliases   []*entity.SearchAlias

	// RankedSearchAvailable simulates the backing engine's full-text
	// support. When false, RankedSearch returns
	// contract.ErrRankedSearchUnavailable so callers exercise the
	// substring fallback.
	RankedSearchAvailable bool
}

func NewStore() *Store {
	return &Store{
		RankedSearchAvailable: true,
	}
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return s
}

func (s *Store) Begin(ctx context.Context) error { return nil }
func (s *Store) Commit() error                   { return nil }
func (s *Store) Rollback() error                 { return nil }

func (s *Store) MissionRepository() contract.MissionRepository {
	return &missionRepo{s: s}
}

func (s *Store) MissionBoxRepository() contract.MissionBoxRepository {
	return &missionBoxRepo{s: s}
}

func (s *Store) MissionArtifactRepository() contract.MissionArtifactRepository {
	return &missionArtifactRepo{s: s}
}

func (s *Store) DocumentRepository() contract.DocumentRepository {
	return &documentRepo{s: s}
}

func (s *Store) ExtractedTextRepository() contract.ExtractedTextRepository {
	return &extractedTextRepo{s: s}
}

func (s *Store) TextChunkRepository() contract.TextChunkRepository {
	return &textChunkRepo{s: s}
}

func (s *Store) PracticeSessionRepository() contract.PracticeSessionRepository {
	return &practiceSessionRepo{s: s}
}

func (s *Store) PracticeItemRepository() contract.PracticeItemRepository {
	return &practiceItemRepo{s: s}
}

func (s *Store) SearchAliasRepository() contract.SearchAliasRepository {
	return &searchAliasRepo{s: s}
}

func ensureId(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func ensureTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
