package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// runAsk answers a question scoped to the mission's linked documents.
// Retrieval failures degrade to an ungrounded answer, never to a failed
// box run.
func (r *Runner) runAsk(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	var in AskInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("%w: invalid ask payload: %v", ErrMissingInput, err)
		}
	}
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: ask requires 'question'", ErrMissingInput)
	}
	useSearch := in.UseSearch == nil || *in.UseSearch

	artifactRepo := uow.MissionArtifactRepository()
	docIds, err := missionDocumentIds(ctx, artifactRepo, box.MissionId)
	if err != nil {
		return nil, err
	}

	var citations []Citation
	answerMd := ""
	confidence := "low"

	if useSearch && len(docIds) > 0 {
		results, searchErr := r.searcher.Search(ctx, uow, question, contract.SearchScope{DocumentIds: docIds}, 5)
		switch {
		case searchErr != nil:
			r.log.Warn("BoxRunner", "ask search failed, answering ungrounded", map[string]interface{}{
				"error": searchErr.Error(),
			})
			answerMd = fmt.Sprintf("Search failed: %v\n\nFalling back to general knowledge mode.", searchErr)
		case len(results) > 0:
			var sb strings.Builder
			sb.WriteString("## Answer\n\nBased on mission materials:\n\n")
			top := results
			if len(top) > 3 {
				top = top[:3]
			}
			filenames := make(map[uuid.UUID]string)
			for i, res := range top {
				fmt.Fprintf(&sb, "**Source %d:** %s\n\n", i+1, res.Snippet)
				citations = append(citations, Citation{
					ChunkId:    res.ChunkId,
					DocumentId: res.DocumentId,
					Filename:   documentFilename(ctx, uow.DocumentRepository(), res.DocumentId, filenames),
					Relevance:  res.Score,
				})
			}
			sb.WriteString("\n**Suggested approach:** Review the sources above and cross-reference with lecture notes.\n")
			answerMd = sb.String()
			if len(citations) >= 2 {
				confidence = "medium"
			}
		default:
			answerMd = "No relevant information found in mission materials.\n\n**Suggestion:** Check if materials have been extracted and chunked."
		}
	} else {
		answerMd = fmt.Sprintf("## General Knowledge Response\n\nQuestion: %s\n\n", question) +
			"**Note:** No mission materials available or search disabled. " +
			"This answer is not grounded in your specific materials.\n\n" +
			"**Suggestion:** Link materials via the inbox stage and run the extract stage to enable cited answers."
	}

	if citations == nil {
		citations = []Citation{}
	}
	qa := &entity.MissionArtifact{
		MissionId:    box.MissionId,
		BoxId:        box.Id,
		ArtifactType: constant.ArtifactTypeQA,
		Title:        truncate(question, 100),
		Content: mustJSON(QAContent{
			Question:   question,
			AnswerMd:   answerMd,
			Citations:  citations,
			Confidence: confidence,
			Method:     "heuristic",
			UseSearch:  useSearch,
		}),
		SourceRefs: mustJSON(CitationSourceRefs{Citations: citations}),
	}
	if err := artifactRepo.Create(ctx, qa); err != nil {
		return nil, err
	}

	return []ArtifactSummary{{
		Id:    qa.Id,
		Type:  qa.ArtifactType,
		Title: qa.Title,
		Extra: map[string]interface{}{
			"confidence": confidence,
			"citations":  len(citations),
		},
	}}, nil
}

// documentFilename resolves a document's original filename, caching
// lookups across citations from the same document.
func documentFilename(ctx context.Context, docRepo contract.DocumentRepository, docId uuid.UUID, cache map[uuid.UUID]string) string {
	if name, ok := cache[docId]; ok {
		return name
	}
	name := "Unknown"
	if doc, err := docRepo.FindById(ctx, docId); err == nil && doc != nil {
		name = doc.OriginalFilename
	}
	cache[docId] = name
	return name
}

// missionDocumentIds collects the source document ids from the mission's
// document artifacts.
func missionDocumentIds(ctx context.Context, artifactRepo contract.MissionArtifactRepository, missionId uuid.UUID) ([]uuid.UUID, error) {
	docArtifacts, err := artifactRepo.ListByMissionAndType(ctx, missionId, constant.ArtifactTypeDocument)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(docArtifacts))
	for _, da := range docArtifacts {
		var content DocumentContent
		if err := json.Unmarshal(da.Content, &content); err != nil {
			continue
		}
		ids = append(ids, content.DocumentId)
	}
	return ids, nil
}
