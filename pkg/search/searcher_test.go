package search

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/memory"
	"academic-workflow-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubProvider struct {
	vec []float32
}

func (p *stubProvider) Available() bool { return true }
func (p *stubProvider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: p.vec},
	}, nil
}

func seedChunks(t *testing.T, store *memory.Store, contents ...string) []uuid.UUID {
	t.Helper()
	docId := uuid.New()
	chunks := make([]*entity.TextChunk, 0, len(contents))
	for i, c := range contents {
		chunks = append(chunks, &entity.TextChunk{
			DocumentId: docId,
			ChunkIndex: i,
			Content:    c,
			WordCount:  len(strings.Fields(c)),
		})
	}
	require.NoError(t, store.TextChunkRepository().CreateBulk(context.Background(), chunks))
	ids := make([]uuid.UUID, len(chunks))
	for i, c := range chunks {
		ids[i] = c.Id
	}
	return ids
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Finite-State Machine", "finite state machine"},
		{"  multiple   spaces\there ", "multiple spaces here"},
		{"ALREADY lower", "already lower"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("filler words before the match appear here. ", 10) +
		"the pythagorean theorem states the relation" +
		strings.Repeat(" and filler words after the match appear here.", 10)

	snippet := Snippet(long, "Pythagorean theorem")
	assert.Contains(t, snippet, "pythagorean theorem")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))

	short := "the theorem in brief"
	assert.Equal(t, short, Snippet(short, "theorem"))

	noMatch := Snippet("completely unrelated content", "quantum chromodynamics")
	assert.True(t, strings.HasSuffix(noMatch, "..."))
}

func TestSnippetKeepsRuneBoundaries(t *testing.T) {
	// The context window lands mid-rune on both sides of the match when
	// the surrounding text is multibyte.
	multibyte := strings.Repeat("é", 200) + " theorem " + strings.Repeat("û", 200)

	snippet := Snippet(multibyte, "theorem")
	assert.True(t, utf8.ValidString(snippet), "snippet must be valid UTF-8: %q", snippet)
	assert.Contains(t, snippet, "theorem")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))

	// No-match truncation path clamps too.
	noMatch := Snippet(strings.Repeat("ß", 400), "theorem")
	assert.True(t, utf8.ValidString(noMatch))
}

func TestDensityScore(t *testing.T) {
	// 1 match in 200 words -> 0.5 occurrences per 100 words
	sparse := strings.Repeat("noise ", 199) + "theorem"
	assert.InDelta(t, 0.5, densityScore(sparse, "theorem"), 0.01)

	// dense matches cap at 1.0
	dense := strings.Repeat("theorem ", 50)
	assert.Equal(t, 1.0, densityScore(dense, "theorem"))

	assert.Equal(t, 0.0, densityScore("", "theorem"))
}

func TestSearchRankedScoresAreMonotonic(t *testing.T) {
	store := memory.NewStore()
	seedChunks(t, store,
		"theorem theorem theorem appears many times in this chunk about the theorem",
		"the theorem appears once here among other prose",
		"nothing relevant in this chunk at all",
	)

	searcher := NewSearcher(nil, nopLogger{})
	results, err := searcher.Search(context.Background(), store, "theorem", contract.SearchScope{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, MethodRanked, results[0].Method)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 0.5, results[1].Score)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchFallsBackWhenRankedUnavailable(t *testing.T) {
	store := memory.NewStore()
	store.RankedSearchAvailable = false
	seedChunks(t, store, "the finite state machine governs box transitions in this engine")

	searcher := NewSearcher(nil, nopLogger{})
	results, err := searcher.Search(context.Background(), store, "finite state machine", contract.SearchScope{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, MethodLikeFallback, results[0].Method)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestSearchAliasExpansionBothDirections(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.SearchAliasRepository().Create(context.Background(), &entity.SearchAlias{
		Term:          "fsm",
		CanonicalTerm: "finite state machine",
	}))
	seedChunks(t, store, "a finite state machine has a well defined transition table for every input")

	searcher := NewSearcher(nil, nopLogger{})
	results, err := searcher.Search(context.Background(), store, "FSM", contract.SearchScope{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Content, "finite state machine")

	// reverse direction: canonical query matches a chunk containing the alias
	store2 := memory.NewStore()
	require.NoError(t, store2.SearchAliasRepository().Create(context.Background(), &entity.SearchAlias{
		Term:          "fsm",
		CanonicalTerm: "finite state machine",
	}))
	seedChunks(t, store2, "the fsm diagram covers every transition of the protocol under test")

	searcher2 := NewSearcher(nil, nopLogger{})
	results2, err := searcher2.Search(context.Background(), store2, "finite state machine", contract.SearchScope{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results2)
	assert.Contains(t, results2[0].Content, "fsm")
}

func TestSearchSemanticAugmentation(t *testing.T) {
	store := memory.NewStore()
	ids := seedChunks(t, store,
		"the theorem appears in this chunk so the ranked pass finds it",
		"unrelated prose that only the embedding space considers close",
	)
	require.NoError(t, store.TextChunkRepository().UpdateEmbedding(context.Background(), ids[1], []float32{1, 0, 0}))

	searcher := NewSearcher(&stubProvider{vec: []float32{1, 0, 0}}, nopLogger{})
	results, err := searcher.Search(context.Background(), store, "theorem", contract.SearchScope{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	methods := map[string]bool{}
	for _, r := range results {
		methods[r.Method] = true
	}
	assert.True(t, methods[MethodRanked])
	assert.True(t, methods[MethodSemantic])
}

func TestSearchEmptyQueryAndNoResults(t *testing.T) {
	store := memory.NewStore()
	searcher := NewSearcher(nil, nopLogger{})

	results, err := searcher.Search(context.Background(), store, "   ", contract.SearchScope{}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searcher.Search(context.Background(), store, "missing", contract.SearchScope{}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
