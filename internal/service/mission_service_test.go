package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/dto"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/memory"
	"academic-workflow-be/pkg/extraction"
	"academic-workflow-be/pkg/mission/runner"
	"academic-workflow-be/pkg/mission/template"
	"academic-workflow-be/pkg/search"

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

type stubExtractor struct {
	text string
}

func (s *stubExtractor) ExtractText(ctx context.Context, document *entity.Document) (string, error) {
	return s.text, nil
}

var _ extraction.Service = (*stubExtractor)(nil)

func newMissionService(store *memory.Store) IMissionService {
	boxRunner := runner.NewRunner(
		&stubExtractor{text: "The Pythagorean theorem states that a^2 + b^2 = c^2."},
		search.NewSearcher(nil, nopLogger{}),
		nil,
		nopLogger{},
	)
	return NewMissionService(store, template.NewRegistry(), boxRunner, nil, nopLogger{})
}

func TestCreateMissionFromTemplate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	resp, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "Midterm prep",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, constant.MissionStateDraft, resp.State)
	require.Len(t, resp.Boxes, 6)

	wantOrder := []constant.BoxType{
		constant.BoxTypeInbox,
		constant.BoxTypeExtract,
		constant.BoxTypeAsk,
		constant.BoxTypePractice,
		constant.BoxTypeChecker,
		constant.BoxTypeCitations,
	}
	for i, box := range resp.Boxes {
		assert.Equal(t, wantOrder[i], box.BoxType)
		assert.Equal(t, i, box.OrderIndex)
		assert.Equal(t, constant.BoxStateIdle, box.State)
		assert.NotEmpty(t, box.Config)
	}

	got, err := svc.Get(ctx, resp.Id)
	require.NoError(t, err)
	assert.Equal(t, "Midterm prep", got.Name)
	assert.Equal(t, constant.MissionTypeExamPrep, got.MissionType)
}

func TestCreateMissionUnknownTemplate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	resp, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "Nope",
		TemplateName: "thesis_defense",
	})
	require.ErrorIs(t, err, template.ErrUnknownTemplate)
	assert.Nil(t, resp)

	// Nothing was persisted.
	missions, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, missions)
}

func TestCreateBoxlessTemplate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	resp, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "Review PR 42",
		TemplateName: "code_review",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Boxes)
}

func TestListMissionsFiltered(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, &dto.CreateMissionRequest{
			Name:         fmt.Sprintf("mission %d", i),
			TemplateName: "exam_prep",
		})
		require.NoError(t, err)
	}
	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "active one",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateState(ctx, &dto.UpdateMissionStateRequest{
		Id:    created.Id,
		State: constant.MissionStateActive,
	}))

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := svc.List(ctx, &dto.ListMissionsRequest{State: constant.MissionStateActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "active one", active[0].Name)
}

func TestUpdateStateRejectsUnknownState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "m",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)

	err = svc.UpdateState(ctx, &dto.UpdateMissionStateRequest{
		Id:    created.Id,
		State: "paused",
	})
	require.ErrorIs(t, err, ErrInvalidState)

	// State is unchanged.
	got, err := svc.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.MissionStateDraft, got.State)
}

func TestUpdateStateMissionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newMissionService(memory.NewStore())

	err := svc.UpdateState(ctx, &dto.UpdateMissionStateRequest{
		Id:    uuid.New(),
		State: constant.MissionStateDone,
	})
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestDeleteMissionCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "doomed",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)

	// Seed a session so the cascade has something beyond boxes to clear.
	require.NoError(t, store.PracticeSessionRepository().Create(ctx, &entity.PracticeSession{
		Id:        uuid.New(),
		MissionId: created.Id,
		State:     "active",
		CreatedAt: time.Now(),
	}))

	require.NoError(t, svc.Delete(ctx, created.Id))

	_, err = svc.Get(ctx, created.Id)
	require.ErrorIs(t, err, ErrMissionNotFound)

	boxes, err := store.MissionBoxRepository().ListByMission(ctx, created.Id)
	require.NoError(t, err)
	assert.Empty(t, boxes)

	sessions, err := store.PracticeSessionRepository().ListByMission(ctx, created.Id)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteMissionRemovesPracticeItems(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "doomed",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)

	doc := &entity.Document{
		Id:               uuid.New(),
		OriginalFilename: "notes.txt",
		FileType:         "txt",
		FileSize:         64,
		StoragePath:      "notes.txt",
		CreatedAt:        time.Now(),
	}
	require.NoError(t, store.DocumentRepository().Create(ctx, doc))

	boxes := make(map[constant.BoxType]uuid.UUID)
	for _, box := range created.Boxes {
		boxes[box.BoxType] = box.Id
	}

	inboxPayload, err := json.Marshal(map[string]interface{}{
		"artifact_ids": []string{doc.Id.String()},
	})
	require.NoError(t, err)
	_, err = svc.RunBox(ctx, &dto.RunBoxRequest{MissionId: created.Id, BoxId: boxes[constant.BoxTypeInbox], Payload: inboxPayload})
	require.NoError(t, err)
	_, err = svc.RunBox(ctx, &dto.RunBoxRequest{MissionId: created.Id, BoxId: boxes[constant.BoxTypeExtract]})
	require.NoError(t, err)
	_, err = svc.RunBox(ctx, &dto.RunBoxRequest{
		MissionId: created.Id,
		BoxId:     boxes[constant.BoxTypePractice],
		Payload:   json.RawMessage(`{"question_count": 1}`),
	})
	require.NoError(t, err)

	sessions, err := store.PracticeSessionRepository().ListByMission(ctx, created.Id)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	items, err := store.PracticeItemRepository().ListBySession(ctx, sessions[0].Id)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	require.NoError(t, svc.Delete(ctx, created.Id))

	// Items go with their session.
	items, err = store.PracticeItemRepository().ListBySession(ctx, sessions[0].Id)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteMissionNotFound(t *testing.T) {
	svc := newMissionService(memory.NewStore())
	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestRunBoxMissionNotFound(t *testing.T) {
	svc := newMissionService(memory.NewStore())
	_, err := svc.RunBox(context.Background(), &dto.RunBoxRequest{
		MissionId: uuid.New(),
		BoxId:     uuid.New(),
	})
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestRunBoxExecutesStage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "m",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)

	doc := &entity.Document{
		Id:               uuid.New(),
		OriginalFilename: "notes.txt",
		FileType:         "txt",
		FileSize:         64,
		StoragePath:      "notes.txt",
		CreatedAt:        time.Now(),
	}
	require.NoError(t, store.DocumentRepository().Create(ctx, doc))

	var inboxBox uuid.UUID
	for _, box := range created.Boxes {
		if box.BoxType == constant.BoxTypeInbox {
			inboxBox = box.Id
		}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"artifact_ids": []string{doc.Id.String()},
	})
	require.NoError(t, err)

	resp, err := svc.RunBox(ctx, &dto.RunBoxRequest{
		MissionId: created.Id,
		BoxId:     inboxBox,
		Payload:   payload,
	})
	require.NoError(t, err)
	assert.Equal(t, constant.BoxStateDone, resp.State)
	require.Len(t, resp.Artifacts, 1)
	assert.Equal(t, constant.ArtifactTypeDocument, resp.Artifacts[0].Type)

	detail, err := svc.GetDetail(ctx, created.Id)
	require.NoError(t, err)
	require.Len(t, detail.Artifacts, 1)
	assert.Equal(t, "notes.txt", detail.Artifacts[0].Title)
}

func TestRunBoxFailureSurfacesRunnerError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMissionService(store)

	created, err := svc.Create(ctx, &dto.CreateMissionRequest{
		Name:         "m",
		TemplateName: "exam_prep",
	})
	require.NoError(t, err)

	var inboxBox uuid.UUID
	for _, box := range created.Boxes {
		if box.BoxType == constant.BoxTypeInbox {
			inboxBox = box.Id
		}
	}

	_, err = svc.RunBox(ctx, &dto.RunBoxRequest{
		MissionId: created.Id,
		BoxId:     inboxBox,
		Payload:   json.RawMessage(`{}`),
	})
	require.Error(t, err)
	var runErr *runner.BoxRunnerError
	require.ErrorAs(t, err, &runErr)
	require.ErrorIs(t, err, runner.ErrMissingInput)
}
