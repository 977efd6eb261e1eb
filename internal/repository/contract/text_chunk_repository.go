package contract

import (
	"context"
	"errors"

	"academic-workflow-be/internal/entity"

	"github.com/google/uuid"
)

// ErrRankedSearchUnavailable signals that the backing store cannot serve
// ranked full-text queries; callers fall back to substring search.
var ErrRankedSearchUnavailable = errors.New("ranked search unavailable")

// SearchScope restricts retrieval to a slice of the corpus. Empty scope
// means the whole corpus.
type SearchScope struct {
	ClassId      *uuid.UUID
	AssignmentId *uuid.UUID
	DocumentIds  []uuid.UUID
}

// RankedChunk is a full-text hit in engine order, best first. Rank is the
// zero-based result position; the retriever rescales it to a 0-1 score.
type RankedChunk struct {
	Chunk *entity.TextChunk
	Rank  int
}

type TextChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.TextChunk) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.TextChunk, error)
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
	ListByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.TextChunk, error)
	// ListByDocumentIds returns up to limit chunks from the given documents,
	// optionally filtered by a content substring.
	ListByDocumentIds(ctx context.Context, documentIds []uuid.UUID, keyword string, limit int) ([]*entity.TextChunk, error)
	// RankedSearch runs the engine's relevance-ranked full-text query over
	// the given query variants. May return ErrRankedSearchUnavailable.
	RankedSearch(ctx context.Context, variants []string, scope SearchScope, limit int) ([]*RankedChunk, error)
	// LikeSearch is the substring fallback over the same variants.
	LikeSearch(ctx context.Context, variants []string, scope SearchScope, limit int) ([]*entity.TextChunk, error)
	// ListEmbedded returns chunks in scope that carry an embedding vector.
	ListEmbedded(ctx context.Context, scope SearchScope) ([]*entity.TextChunk, error)
	UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, embedding []float32) error
}
