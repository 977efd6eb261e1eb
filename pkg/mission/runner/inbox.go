package runner

import (
	"context"
	"encoding/json"
	"fmt"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/unitofwork"
)

// runInbox links existing documents into the mission, one document
// artifact per id. A missing document aborts the whole call.
func (r *Runner) runInbox(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	var in InboxInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("%w: invalid inbox payload: %v", ErrMissingInput, err)
		}
	}
	if len(in.DocumentIds) == 0 {
		return nil, fmt.Errorf("%w: inbox requires 'artifact_ids'", ErrMissingInput)
	}

	docRepo := uow.DocumentRepository()
	artifactRepo := uow.MissionArtifactRepository()

	var summaries []ArtifactSummary
	for _, docId := range in.DocumentIds {
		doc, err := docRepo.FindById(ctx, docId)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docId)
		}

		artifact := &entity.MissionArtifact{
			MissionId:    box.MissionId,
			BoxId:        box.Id,
			ArtifactType: constant.ArtifactTypeDocument,
			Title:        doc.OriginalFilename,
			Content: mustJSON(DocumentContent{
				DocumentId: doc.Id,
				Filename:   doc.OriginalFilename,
				FileType:   doc.FileType,
				FileSize:   doc.FileSize,
			}),
			SourceRefs: mustJSON(DocumentSourceRef{
				DocumentId: doc.Id,
				Filename:   doc.OriginalFilename,
			}),
		}
		if err := artifactRepo.Create(ctx, artifact); err != nil {
			return nil, err
		}

		summaries = append(summaries, ArtifactSummary{
			Id:    artifact.Id,
			Type:  artifact.ArtifactType,
			Title: artifact.Title,
		})
	}

	return summaries, nil
}
