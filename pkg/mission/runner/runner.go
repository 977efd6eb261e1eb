package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/pkg/logger"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/chunking"
	"academic-workflow-be/pkg/extraction"
	"academic-workflow-be/pkg/search"

	"github.com/google/uuid"
)

// ChunkIndexNotifier is told when a document gains new chunks so the
// embedding backfill can pick them up. nil disables notification.
type ChunkIndexNotifier interface {
	NotifyChunksCreated(documentId uuid.UUID)
}

// ArtifactSummary is the caller-facing view of one artifact a stage wrote.
type ArtifactSummary struct {
	Id    uuid.UUID              `json:"id"`
	Type  string                 `json:"type"`
	Title string                 `json:"title"`
	Extra map[string]interface{} `json:"extra,omitempty"`
}

type RunResult struct {
	BoxId     uuid.UUID         `json:"box_id"`
	State     string            `json:"state"`
	Artifacts []ArtifactSummary `json:"artifacts"`
}

type handlerFunc func(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error)

// Runner executes one pipeline stage at a time, enforcing the box state
// machine: idle/ready/error -> running -> done/error. running is the sole
// concurrency guard; a box already running rejects a new invocation.
type Runner struct {
	handlers  map[constant.BoxType]handlerFunc
	extractor extraction.Service
	searcher  *search.Searcher
	chunkCfg  chunking.Config
	notifier  ChunkIndexNotifier
	log       logger.ILogger
}

func NewRunner(extractor extraction.Service, searcher *search.Searcher, notifier ChunkIndexNotifier, log logger.ILogger) *Runner {
	r := &Runner{
		extractor: extractor,
		searcher:  searcher,
		chunkCfg:  chunking.DefaultConfig(),
		notifier:  notifier,
		log:       log,
	}
	r.handlers = map[constant.BoxType]handlerFunc{
		constant.BoxTypeInbox:     r.runInbox,
		constant.BoxTypeExtract:   r.runExtract,
		constant.BoxTypeAsk:       r.runAsk,
		constant.BoxTypePractice:  r.runPractice,
		constant.BoxTypeChecker:   r.runChecker,
		constant.BoxTypeCitations: r.runCitations,
	}
	return r
}

// Run loads the box, transitions it to running (checkpointed before any
// side effect), dispatches to the stage handler and finalizes to done or
// error. Work a handler committed before failing is not rolled back.
func (r *Runner) Run(ctx context.Context, uow unitofwork.UnitOfWork, missionId, boxId uuid.UUID, payload json.RawMessage) (*RunResult, error) {
	boxRepo := uow.MissionBoxRepository()

	box, err := boxRepo.FindByIdInMission(ctx, boxId, missionId)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, fmt.Errorf("%w: box %s in mission %s", ErrBoxNotFound, boxId, missionId)
	}

	if box.State == constant.BoxStateRunning {
		return nil, fmt.Errorf("%w: box %s", ErrAlreadyRunning, boxId)
	}
	switch box.State {
	case constant.BoxStateIdle, constant.BoxStateReady, constant.BoxStateError:
	default:
		return nil, fmt.Errorf("%w: box %s is in state %q", ErrInvalidStateTransition, boxId, box.State)
	}

	// checkpoint before side effects
	now := time.Now().UTC()
	box.State = constant.BoxStateRunning
	box.LastRunAt = &now
	box.LastError = nil
	if err := boxRepo.Update(ctx, box); err != nil {
		return nil, err
	}

	summaries, runErr := r.dispatch(ctx, uow, box, payload)
	if runErr != nil {
		box.State = constant.BoxStateError
		msg := runErr.Error()
		box.LastError = &msg
		if err := boxRepo.Update(ctx, box); err != nil {
			r.log.Error("BoxRunner", "failed to persist error state", map[string]interface{}{
				"box_id": box.Id.String(),
				"error":  err.Error(),
			})
		}
		return nil, &BoxRunnerError{BoxId: box.Id, Err: runErr}
	}

	box.State = constant.BoxStateDone
	if err := boxRepo.Update(ctx, box); err != nil {
		return nil, err
	}

	return &RunResult{
		BoxId:     box.Id,
		State:     box.State,
		Artifacts: summaries,
	}, nil
}

func (r *Runner) dispatch(ctx context.Context, uow unitofwork.UnitOfWork, box *entity.MissionBox, payload json.RawMessage) ([]ArtifactSummary, error) {
	handler, ok := r.handlers[box.BoxType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnimplementedBoxType, box.BoxType)
	}
	r.log.Info("BoxRunner", "running box", map[string]interface{}{
		"box_id":   box.Id.String(),
		"box_type": string(box.BoxType),
	})
	return handler(ctx, uow, box, payload)
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// all payload types marshal cleanly; this guards future edits
		return json.RawMessage(`{}`)
	}
	return data
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
