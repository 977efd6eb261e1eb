package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/chunking"
)

// runExtract makes sure every linked document has extracted text and
// chunks. Per-document failures go into the report instead of failing the
// batch; re-running with existing chunks is a no-op per document.
func (r *Runner) runExtract(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	artifactRepo := uow.MissionArtifactRepository()

	docArtifacts, err := artifactRepo.ListByMissionAndType(ctx, box.MissionId, constant.ArtifactTypeDocument)
	if err != nil {
		return nil, err
	}
	if len(docArtifacts) == 0 {
		return nil, fmt.Errorf("%w: run the inbox stage first", ErrNoDocuments)
	}

	docRepo := uow.DocumentRepository()
	textRepo := uow.ExtractedTextRepository()
	chunkRepo := uow.TextChunkRepository()

	var reportLines []string
	totalChunks := int64(0)
	processed := 0

	for _, da := range docArtifacts {
		var content DocumentContent
		if err := json.Unmarshal(da.Content, &content); err != nil {
			reportLines = append(reportLines, fmt.Sprintf("- %s: unreadable artifact content (skipped)", da.Title))
			continue
		}

		doc, err := docRepo.FindById(ctx, content.DocumentId)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			reportLines = append(reportLines, fmt.Sprintf("- %s: document not found (skipped)", content.Filename))
			continue
		}

		extracted, err := textRepo.FindByDocumentId(ctx, doc.Id)
		if err != nil {
			return nil, err
		}
		if extracted == nil {
			text, extractErr := r.extractor.ExtractText(ctx, doc)
			if extractErr != nil {
				reportLines = append(reportLines, fmt.Sprintf("- %s: extraction failed (%v)", doc.OriginalFilename, extractErr))
				continue
			}
			extracted = &entity.ExtractedText{
				DocumentId: doc.Id,
				Content:    text,
				Status:     "completed",
			}
			if err := textRepo.Create(ctx, extracted); err != nil {
				return nil, err
			}
			reportLines = append(reportLines, fmt.Sprintf("- %s: extracted text", doc.OriginalFilename))
		}

		existing, err := chunkRepo.CountByDocumentId(ctx, doc.Id)
		if err != nil {
			return nil, err
		}
		if existing == 0 {
			segments := chunking.Segment(extracted.Content, r.chunkCfg)
			chunks := make([]*entity.TextChunk, 0, len(segments))
			for _, seg := range segments {
				chunks = append(chunks, &entity.TextChunk{
					ExtractedTextId: extracted.Id,
					DocumentId:      doc.Id,
					ClassId:         doc.ClassId,
					AssignmentId:    doc.AssignmentId,
					ChunkIndex:      seg.Index,
					Content:         seg.Content,
					ChunkType:       seg.Type,
					SectionTitle:    seg.SectionTitle,
					WordCount:       seg.WordCount,
					CharStart:       seg.CharStart,
					CharEnd:         seg.CharEnd,
				})
			}
			if err := chunkRepo.CreateBulk(ctx, chunks); err != nil {
				reportLines = append(reportLines, fmt.Sprintf("- %s: chunking failed (%v)", doc.OriginalFilename, err))
				continue
			}
			totalChunks += int64(len(chunks))
			reportLines = append(reportLines, fmt.Sprintf("- %s: created %d chunks", doc.OriginalFilename, len(chunks)))
			if r.notifier != nil {
				r.notifier.NotifyChunksCreated(doc.Id)
			}
		} else {
			totalChunks += existing
			reportLines = append(reportLines, fmt.Sprintf("- %s: already chunked (%d chunks)", doc.OriginalFilename, existing))
		}

		processed++
	}

	reportMd := "## Extraction Report\n\n" +
		fmt.Sprintf("**Artifacts Processed:** %d\n\n", processed) +
		fmt.Sprintf("**Total Chunks:** %d\n\n", totalChunks) +
		"### Details\n\n" + strings.Join(reportLines, "\n")

	report := &entity.MissionArtifact{
		MissionId:    box.MissionId,
		BoxId:        box.Id,
		ArtifactType: constant.ArtifactTypeNote,
		Title:        "Extraction Report",
		Content:      mustJSON(NoteContent{ReportMd: reportMd}),
		SourceRefs: mustJSON(NoteSourceRef{
			ArtifactsProcessed: processed,
			ChunksCreated:      int(totalChunks),
		}),
	}
	if err := artifactRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return []ArtifactSummary{{
		Id:    report.Id,
		Type:  report.ArtifactType,
		Title: report.Title,
		Extra: map[string]interface{}{
			"summary": fmt.Sprintf("%d artifacts, %d chunks", processed, totalChunks),
		},
	}}, nil
}
