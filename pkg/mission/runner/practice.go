package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/unitofwork"
)

const practiceChunkCap = 50

// runPractice creates a practice session whose items are generated
// deterministically from the mission's chunks via fixed prompt heuristics.
func (r *Runner) runPractice(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	var in PracticeInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("%w: invalid practice payload: %v", ErrMissingInput, err)
		}
	}
	if in.QuestionCount <= 0 {
		in.QuestionCount = 10
	}

	docIds, err := missionDocumentIds(ctx, uow.MissionArtifactRepository(), box.MissionId)
	if err != nil {
		return nil, err
	}
	if len(docIds) == 0 {
		return nil, fmt.Errorf("%w: run the inbox stage first", ErrNoDocuments)
	}

	chunks, err := uow.TextChunkRepository().ListByDocumentIds(ctx, docIds, in.TopicKeywords, practiceChunkCap)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: run the extract stage first", ErrNoChunks)
	}

	session := &entity.PracticeSession{
		MissionId: box.MissionId,
		State:     "active",
	}
	if err := uow.PracticeSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	used := in.QuestionCount
	if used > len(chunks) {
		used = len(chunks)
	}

	items := make([]*entity.PracticeItem, 0, used)
	for i, chunk := range chunks[:used] {
		items = append(items, &entity.PracticeItem{
			SessionId: session.Id,
			Prompt:    practicePrompt(i, chunk.Content),
			State:     constant.PracticeItemUnanswered,
			Citations: []entity.ChunkCitation{{
				ChunkId:      chunk.Id,
				DocumentId:   chunk.DocumentId,
				SectionTitle: chunk.SectionTitle,
			}},
		})
	}
	if err := uow.PracticeItemRepository().CreateBulk(ctx, items); err != nil {
		return nil, err
	}

	topic := in.TopicKeywords
	if topic == "" {
		topic = "general"
	}
	artifact := &entity.MissionArtifact{
		MissionId:    box.MissionId,
		BoxId:        box.Id,
		ArtifactType: constant.ArtifactTypePracticeSession,
		Title:        fmt.Sprintf("Practice Session (%d questions)", len(items)),
		Content: mustJSON(PracticeContent{
			SessionId:     session.Id,
			QuestionCount: len(items),
			Topic:         topic,
		}),
		SourceRefs: mustJSON(PracticeSourceRef{
			SessionId:  session.Id,
			ChunksUsed: used,
		}),
	}
	if err := uow.MissionArtifactRepository().Create(ctx, artifact); err != nil {
		return nil, err
	}

	return []ArtifactSummary{{
		Id:    artifact.Id,
		Type:  artifact.ArtifactType,
		Title: artifact.Title,
		Extra: map[string]interface{}{
			"session_id":     session.Id.String(),
			"question_count": len(items),
		},
	}}, nil
}

// practicePrompt turns chunk content into a prompt. Definition and
// equation material gets a targeted template; everything else a generic
// one.
func practicePrompt(index int, content string) string {
	head := truncate(content, 200)
	lowered := strings.ToLower(head)
	excerpt := truncate(head, 150)

	switch {
	case strings.Contains(head, "=") || strings.Contains(lowered, "is defined as"):
		return fmt.Sprintf("Q%d: Based on the following, explain the concept:\n\n%s...", index+1, excerpt)
	case strings.Contains(lowered, "formula") || strings.Contains(lowered, "equation"):
		return fmt.Sprintf("Q%d: Derive or explain: %s...", index+1, excerpt)
	default:
		return fmt.Sprintf("Q%d: Explain in your own words:\n\n%s...", index+1, excerpt)
	}
}
