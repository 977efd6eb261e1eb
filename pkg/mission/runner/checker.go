package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// runChecker records a user answer on one practice item, recomputes the
// session score from item states and writes a verification report.
func (r *Runner) runChecker(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	var in CheckerInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("%w: invalid checker payload: %v", ErrMissingInput, err)
		}
	}
	if in.SessionId == uuid.Nil || in.ItemId == uuid.Nil {
		return nil, fmt.Errorf("%w: checker requires 'session_id' and 'item_id'", ErrMissingInput)
	}

	itemRepo := uow.PracticeItemRepository()
	item, err := itemRepo.FindByIdInSession(ctx, in.ItemId, in.SessionId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, in.ItemId)
	}

	userAnswer := strings.TrimSpace(in.UserAnswer)
	now := time.Now().UTC()
	item.UserAnswer = &userAnswer
	item.AnsweredAt = &now

	// correctness heuristic: a substantive answer counts as correct
	isCorrect := len(userAnswer) > 20
	if isCorrect {
		item.State = constant.PracticeItemCorrect
	} else {
		item.State = constant.PracticeItemIncorrect
	}
	item.Checks = mustJSON(map[string]interface{}{
		"answer_length": len(userAnswer),
		"has_content":   isCorrect,
		"timestamp":     now.Format(time.RFC3339),
	})
	if err := itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	// recompute the aggregate from item states so a re-check of the same
	// item cannot inflate the score
	sessionRepo := uow.PracticeSessionRepository()
	session, err := sessionRepo.FindById(ctx, in.SessionId)
	if err != nil {
		return nil, err
	}
	if session != nil {
		items, err := itemRepo.ListBySession(ctx, session.Id)
		if err != nil {
			return nil, err
		}
		score := entity.PracticeScore{}
		for _, it := range items {
			switch it.State {
			case constant.PracticeItemCorrect:
				score.Correct++
			case constant.PracticeItemIncorrect:
				score.Incorrect++
			}
		}
		score.Attempted = score.Correct + score.Incorrect
		session.Score = score
		if err := sessionRepo.Update(ctx, session); err != nil {
			return nil, err
		}
	}

	result := "Needs more detail"
	if isCorrect {
		result = "Acceptable"
	}
	var sb strings.Builder
	sb.WriteString("## Verification Result\n\n")
	fmt.Fprintf(&sb, "**Question:** %s...\n\n", truncate(item.Prompt, 150))
	fmt.Fprintf(&sb, "**Your Answer:** %s...\n\n", truncate(userAnswer, 200))
	fmt.Fprintf(&sb, "**Result:** %s\n\n", result)
	if len(item.Citations) > 0 {
		sb.WriteString("**Source Material:**\n")
		for _, cite := range item.Citations {
			section := "n/a"
			if cite.SectionTitle != nil {
				section = *cite.SectionTitle
			}
			fmt.Fprintf(&sb, "- Chunk %s (section %s)\n", cite.ChunkId, section)
		}
	}

	artifact := &entity.MissionArtifact{
		MissionId:    box.MissionId,
		BoxId:        box.Id,
		ArtifactType: constant.ArtifactTypeVerification,
		Title:        fmt.Sprintf("Check Result: %s", truncate(item.Id.String(), 8)),
		Content:      mustJSON(VerificationContent{VerificationMd: sb.String()}),
		SourceRefs: mustJSON(VerificationSourceRef{
			SessionId: in.SessionId,
			ItemId:    in.ItemId,
			Result:    item.State,
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
			"result": item.State,
		},
	}}, nil
}
