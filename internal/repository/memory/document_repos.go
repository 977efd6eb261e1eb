package memory

import (
	"context"
	"sort"
	"strings"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/contract"

	"github.com/google/uuid"
)

type documentRepo struct {
	s *Store
}

func (r *documentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	document.Id = ensureId(document.Id)
	document.CreatedAt = ensureTime(document.CreatedAt)
	stored := *document
	r.s.documents = append(r.s.documents, &stored)
	return nil
}

func (r *documentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.Id == id {
			found := *d
			return &found, nil
		}
	}
	return nil, nil
}

type extractedTextRepo struct {
	s *Store
}

func (r *extractedTextRepo) Create(ctx context.Context, text *entity.ExtractedText) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	text.Id = ensureId(text.Id)
	text.CreatedAt = ensureTime(text.CreatedAt)
	stored := *text
	r.s.texts = append(r.s.texts, &stored)
	return nil
}

func (r *extractedTextRepo) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.ExtractedText, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.texts {
		if t.DocumentId == documentId {
			found := *t
			return &found, nil
		}
	}
	return nil, nil
}

type textChunkRepo struct {
	s *Store
}

func (r *textChunkRepo) inScope(c *entity.TextChunk, scope contract.SearchScope) bool {
	if scope.ClassId != nil && (c.ClassId == nil || *c.ClassId != *scope.ClassId) {
		return false
	}
	if scope.AssignmentId != nil && (c.AssignmentId == nil || *c.AssignmentId != *scope.AssignmentId) {
		return false
	}
	if len(scope.DocumentIds) > 0 {
		ok := false
		for _, id := range scope.DocumentIds {
			if c.DocumentId == id {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (r *textChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.TextChunk) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range chunks {
		c.Id = ensureId(c.Id)
		c.CreatedAt = ensureTime(c.CreatedAt)
		stored := *c
		r.s.chunks = append(r.s.chunks, &stored)
	}
	return nil
}

func (r *textChunkRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.TextChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.chunks {
		if c.Id == id {
			found := *c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *textChunkRepo) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, c := range r.s.chunks {
		if c.DocumentId == documentId {
			count++
		}
	}
	return count, nil
}

func (r *textChunkRepo) ListByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.TextChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TextChunk
	for _, c := range r.s.chunks {
		if c.DocumentId == documentId {
			found := *c
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out, nil
}

func (r *textChunkRepo) ListByDocumentIds(ctx context.Context, documentIds []uuid.UUID, keyword string, limit int) ([]*entity.TextChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	idSet := make(map[uuid.UUID]bool, len(documentIds))
	for _, id := range documentIds {
		idSet[id] = true
	}
	lowered := strings.ToLower(keyword)
	var out []*entity.TextChunk
	for _, c := range r.s.chunks {
		if !idSet[c.DocumentId] {
			continue
		}
		if lowered != "" && !strings.Contains(strings.ToLower(c.Content), lowered) {
			continue
		}
		found := *c
		out = append(out, &found)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *textChunkRepo) RankedSearch(ctx context.Context, variants []string, scope contract.SearchScope, limit int) ([]*contract.RankedChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.RankedSearchAvailable {
		return nil, contract.ErrRankedSearchUnavailable
	}

	type hit struct {
		chunk *entity.TextChunk
		count int
	}
	var hits []hit
	for _, c := range r.s.chunks {
		if !r.inScope(c, scope) {
			continue
		}
		lowered := strings.ToLower(c.Content)
		count := 0
		for _, v := range variants {
			for _, term := range strings.Fields(strings.ToLower(v)) {
				count += strings.Count(lowered, term)
			}
		}
		if count > 0 {
			found := *c
			hits = append(hits, hit{chunk: &found, count: count})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	ranked := make([]*contract.RankedChunk, 0, len(hits))
	for i, h := range hits {
		ranked = append(ranked, &contract.RankedChunk{Chunk: h.chunk, Rank: i})
	}
	return ranked, nil
}

func (r *textChunkRepo) LikeSearch(ctx context.Context, variants []string, scope contract.SearchScope, limit int) ([]*entity.TextChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TextChunk
	for _, c := range r.s.chunks {
		if !r.inScope(c, scope) {
			continue
		}
		lowered := strings.ToLower(c.Content)
		for _, v := range variants {
			if strings.Contains(lowered, strings.ToLower(v)) {
				found := *c
				out = append(out, &found)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WordCount > out[j].WordCount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *textChunkRepo) ListEmbedded(ctx context.Context, scope contract.SearchScope) ([]*entity.TextChunk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TextChunk
	for _, c := range r.s.chunks {
		if len(c.Embedding) == 0 || !r.inScope(c, scope) {
			continue
		}
		found := *c
		out = append(out, &found)
	}
	return out, nil
}

func (r *textChunkRepo) UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, embedding []float32) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.chunks {
		if c.Id == chunkId {
			c.Embedding = append([]float32(nil), embedding...)
			return nil
		}
	}
	return nil
}
