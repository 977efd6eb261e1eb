package search

import (
	"context"
	"sort"
	"strings"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/pkg/logger"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	MethodRanked       = "fulltext"
	MethodLikeFallback = "like_fallback"
	MethodSemantic     = "semantic"
)

// Result is one retrieval hit. Score is 0-1, best first; Method records
// which rung of the ladder produced the hit.
type Result struct {
	ChunkId      uuid.UUID `json:"chunk_id"`
	DocumentId   uuid.UUID `json:"document_id"`
	Content      string    `json:"content"`
	Snippet      string    `json:"snippet"`
	SectionTitle *string   `json:"section_title,omitempty"`
	Score        float64   `json:"score"`
	Method       string    `json:"method"`
}

// Searcher runs the hybrid retrieval ladder: alias-expanded ranked
// full-text search, substring fallback when the engine is unavailable,
// and optional embedding augmentation when a provider is configured.
type Searcher struct {
	expander *AliasExpander
	provider embedding.Provider
	log      logger.ILogger
}

func NewSearcher(provider embedding.Provider, log logger.ILogger) *Searcher {
	return &Searcher{
		expander: NewAliasExpander(),
		provider: provider,
		log:      log,
	}
}

// Search never errors on "no results"; it returns an empty slice. Only a
// failure of the last fallback rung surfaces as an error.
func (s *Searcher) Search(ctx context.Context, uow unitofwork.UnitOfWork, query string, scope contract.SearchScope, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	variants := s.expander.Expand(ctx, uow.SearchAliasRepository(), query)
	if len(variants) == 0 {
		return []Result{}, nil
	}

	chunkRepo := uow.TextChunkRepository()

	var results []Result
	ranked, err := chunkRepo.RankedSearch(ctx, variants, scope, limit)
	if err != nil {
		s.log.Warn("Search", "ranked search unavailable, using substring fallback", map[string]interface{}{
			"error": err.Error(),
		})
		chunks, likeErr := chunkRepo.LikeSearch(ctx, variants, scope, limit)
		if likeErr != nil {
			return nil, likeErr
		}
		for _, c := range chunks {
			results = append(results, s.toResult(c, query, densityScore(c.Content, query), MethodLikeFallback))
		}
	} else {
		for _, h := range ranked {
			score := 1.0 / (1.0 + float64(h.Rank))
			results = append(results, s.toResult(h.Chunk, query, score, MethodRanked))
		}
	}

	if s.provider != nil && s.provider.Available() && len(results) < limit {
		results = s.augmentSemantic(ctx, chunkRepo, query, scope, results, limit)
	}

	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func (s *Searcher) toResult(c *entity.TextChunk, query string, score float64, method string) Result {
	return Result{
		ChunkId:      c.Id,
		DocumentId:   c.DocumentId,
		Content:      c.Content,
		Snippet:      Snippet(c.Content, query),
		SectionTitle: c.SectionTitle,
		Score:        score,
		Method:       method,
	}
}

// augmentSemantic merges cosine-ranked hits into the primary set. Any
// failure keeps the primary results untouched.
func (s *Searcher) augmentSemantic(ctx context.Context, chunkRepo contract.TextChunkRepository, query string, scope contract.SearchScope, primary []Result, limit int) []Result {
	resp, err := s.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		s.log.Warn("Search", "query embedding failed, skipping semantic augmentation", map[string]interface{}{
			"error": err.Error(),
		})
		return primary
	}

	chunks, err := chunkRepo.ListEmbedded(ctx, scope)
	if err != nil {
		s.log.Warn("Search", "embedded chunk listing failed, skipping semantic augmentation", map[string]interface{}{
			"error": err.Error(),
		})
		return primary
	}

	type scored struct {
		chunk *entity.TextChunk
		score float64
	}
	var candidates []scored
	for _, c := range chunks {
		candidates = append(candidates, scored{
			chunk: c,
			score: embedding.CosineSimilarity(resp.Embedding.Values, c.Embedding),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	seen := make(map[uuid.UUID]bool, len(primary))
	for _, r := range primary {
		seen[r.ChunkId] = true
	}
	merged := primary
	for _, c := range candidates {
		if seen[c.chunk.Id] {
			continue
		}
		seen[c.chunk.Id] = true
		merged = append(merged, s.toResult(c.chunk, query, c.score, MethodSemantic))
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// densityScore rates a substring hit by term occurrences per 100 words.
func densityScore(content, query string) float64 {
	lowered := strings.ToLower(content)
	matches := 0
	for _, term := range strings.Fields(Normalize(query)) {
		matches += strings.Count(lowered, term)
	}

	words := len(strings.Fields(lowered))
	if words == 0 {
		return 0
	}
	score := float64(matches) / (float64(words) / 100.0)
	if score > 1 {
		score = 1
	}
	return score
}
