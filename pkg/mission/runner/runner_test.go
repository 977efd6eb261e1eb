package runner

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/memory"
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

const examText = `# Pythagorean Theorem
The Pythagorean theorem states that a^2 + b^2 = c^2. It relates the three
sides of a right triangle and is one of the oldest results in geometry,
known to Babylonian mathematicians long before Pythagoras.

# Proof Sketch
One classic proof rearranges four copies of the same right triangle inside
a square, comparing the leftover area before and after the rearrangement.
The equation falls out of equating the two leftover areas directly.

# Applications
Distance computation in the plane uses the formula directly: the distance
between two points is the square root of the sum of squared coordinate
differences, an immediate application of the theorem to coordinates.`

func newTestRunner(text string) *Runner {
	return NewRunner(&stubExtractor{text: text}, search.NewSearcher(nil, nopLogger{}), nil, nopLogger{})
}

func createExamPrepMission(t *testing.T, store *memory.Store) (uuid.UUID, map[constant.BoxType]*entity.MissionBox) {
	t.Helper()
	ctx := context.Background()

	tpl, err := template.NewRegistry().Get("exam_prep")
	require.NoError(t, err)

	mission := &entity.Mission{
		Name:        "algebra final",
		MissionType: tpl.MissionType,
		State:       constant.MissionStateDraft,
		Metadata:    tpl.Metadata,
	}
	require.NoError(t, store.MissionRepository().Create(ctx, mission))

	boxes := make([]*entity.MissionBox, 0, len(tpl.Stages))
	for i, stage := range tpl.Stages {
		boxes = append(boxes, &entity.MissionBox{
			MissionId:  mission.Id,
			BoxType:    stage.BoxType,
			OrderIndex: i,
			State:      constant.BoxStateIdle,
			Config:     stage.Config,
		})
	}
	require.NoError(t, store.MissionBoxRepository().CreateBulk(ctx, boxes))

	byType := make(map[constant.BoxType]*entity.MissionBox, len(boxes))
	for _, b := range boxes {
		byType[b.BoxType] = b
	}
	return mission.Id, byType
}

func seedDocument(t *testing.T, store *memory.Store) uuid.UUID {
	t.Helper()
	doc := &entity.Document{
		OriginalFilename: "lecture-notes.md",
		FileType:         "md",
		FileSize:         int64(len(examText)),
		StoragePath:      "uploads/lecture-notes.md",
	}
	require.NoError(t, store.DocumentRepository().Create(context.Background(), doc))
	return doc.Id
}

func TestRunBoxNotFound(t *testing.T) {
	store := memory.NewStore()
	missionId, _ := createExamPrepMission(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(context.Background(), store, missionId, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrBoxNotFound)
}

func TestRunRejectsRunningBox(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()

	box := boxes[constant.BoxTypeInbox]
	box.State = constant.BoxStateRunning
	require.NoError(t, store.MissionBoxRepository().Update(ctx, box))

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, box.Id, nil)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	reloaded, err := store.MissionBoxRepository().FindByIdInMission(ctx, box.Id, missionId)
	require.NoError(t, err)
	assert.Equal(t, constant.BoxStateRunning, reloaded.State)
}

func TestRunRejectsDoneBox(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()

	box := boxes[constant.BoxTypeCitations]
	box.State = constant.BoxStateDone
	require.NoError(t, store.MissionBoxRepository().Update(ctx, box))

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, box.Id, nil)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestRunUnknownBoxTypeLandsInErrorState(t *testing.T) {
	store := memory.NewStore()
	missionId, _ := createExamPrepMission(t, store)
	ctx := context.Background()

	rogue := &entity.MissionBox{
		MissionId:  missionId,
		BoxType:    constant.BoxType("review"),
		OrderIndex: 99,
		State:      constant.BoxStateIdle,
	}
	require.NoError(t, store.MissionBoxRepository().CreateBulk(ctx, []*entity.MissionBox{rogue}))

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, rogue.Id, nil)
	require.Error(t, err)

	var boxErr *BoxRunnerError
	require.ErrorAs(t, err, &boxErr)
	assert.ErrorIs(t, err, ErrUnimplementedBoxType)

	reloaded, err := store.MissionBoxRepository().FindByIdInMission(ctx, rogue.Id, missionId)
	require.NoError(t, err)
	assert.Equal(t, constant.BoxStateError, reloaded.State)
	require.NotNil(t, reloaded.LastError)
	assert.Contains(t, *reloaded.LastError, "not implemented")
}

func TestInboxRequiresDocumentIds(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)

	reloaded, findErr := store.MissionBoxRepository().FindByIdInMission(ctx, boxes[constant.BoxTypeInbox].Id, missionId)
	require.NoError(t, findErr)
	assert.Equal(t, constant.BoxStateError, reloaded.State)
}

func TestInboxUnknownDocumentAborts(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)

	payload := mustJSON(InboxInput{DocumentIds: []uuid.UUID{uuid.New()}})
	r := newTestRunner(examText)
	_, err := r.Run(context.Background(), store, missionId, boxes[constant.BoxTypeInbox].Id, payload)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestExtractWithoutDocuments(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(context.Background(), store, missionId, boxes[constant.BoxTypeExtract].Id, nil)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestPracticeWithoutChunks(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)

	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypePractice].Id, mustJSON(PracticeInput{QuestionCount: 3}))
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestExtractIdempotence(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)

	extractBox := boxes[constant.BoxTypeExtract]
	_, err = r.Run(ctx, store, missionId, extractBox.Id, nil)
	require.NoError(t, err)

	firstCount, err := store.TextChunkRepository().CountByDocumentId(ctx, docId)
	require.NoError(t, err)
	require.Greater(t, firstCount, int64(0))

	// re-arm the box; rerunning must not duplicate chunks
	extractBox.State = constant.BoxStateIdle
	require.NoError(t, store.MissionBoxRepository().Update(ctx, extractBox))

	result, err := r.Run(ctx, store, missionId, extractBox.Id, nil)
	require.NoError(t, err)

	secondCount, err := store.TextChunkRepository().CountByDocumentId(ctx, docId)
	require.NoError(t, err)
	assert.Equal(t, firstCount, secondCount)

	require.Len(t, result.Artifacts, 1)
	notes, err := store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeNote)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	var content NoteContent
	require.NoError(t, json.Unmarshal(notes[1].Content, &content))
	assert.Contains(t, content.ReportMd, "already chunked")
}

func TestAskWithoutSearchIsUngrounded(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()

	useSearch := false
	payload := mustJSON(AskInput{Question: "What is a right triangle?", UseSearch: &useSearch})

	r := newTestRunner(examText)
	result, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeAsk].Id, payload)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)

	artifacts, err := store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeQA)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	var content QAContent
	require.NoError(t, json.Unmarshal(artifacts[0].Content, &content))
	assert.Equal(t, "low", content.Confidence)
	assert.Empty(t, content.Citations)
	assert.Contains(t, content.AnswerMd, "not grounded")
}

func TestExamPrepEndToEnd(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)

	// inbox
	result, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)
	assert.Equal(t, constant.BoxStateDone, result.State)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, constant.ArtifactTypeDocument, result.Artifacts[0].Type)

	// extract
	result, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeExtract].Id, nil)
	require.NoError(t, err)
	chunkCount, err := store.TextChunkRepository().CountByDocumentId(ctx, docId)
	require.NoError(t, err)
	require.GreaterOrEqual(t, chunkCount, int64(3))

	// ask
	result, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeAsk].Id, mustJSON(AskInput{Question: "What is the Pythagorean theorem?"}))
	require.NoError(t, err)
	qaArtifacts, err := store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeQA)
	require.NoError(t, err)
	require.Len(t, qaArtifacts, 1)
	var qa QAContent
	require.NoError(t, json.Unmarshal(qaArtifacts[0].Content, &qa))
	assert.NotEmpty(t, qa.AnswerMd)
	assert.NotEmpty(t, qa.Citations)
	for _, c := range qa.Citations {
		assert.Equal(t, "lecture-notes.md", c.Filename)
	}

	// practice
	result, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypePractice].Id, mustJSON(PracticeInput{QuestionCount: 3}))
	require.NoError(t, err)
	sessions, err := store.PracticeSessionRepository().ListByMission(ctx, missionId)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	items, err := store.PracticeItemRepository().ListBySession(ctx, sessions[0].Id)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, constant.PracticeItemUnanswered, item.State)
		assert.NotEmpty(t, item.Citations)
	}

	// checker
	answer := strings.Repeat("The square on the hypotenuse ", 4) // > 20 chars
	result, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeChecker].Id, mustJSON(CheckerInput{
		SessionId:  sessions[0].Id,
		ItemId:     items[0].Id,
		UserAnswer: answer,
	}))
	require.NoError(t, err)
	checked, err := store.PracticeItemRepository().FindByIdInSession(ctx, items[0].Id, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, constant.PracticeItemCorrect, checked.State)
	session, err := store.PracticeSessionRepository().FindById(ctx, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score.Attempted)
	assert.Equal(t, 1, session.Score.Correct)
	assert.Equal(t, 0, session.Score.Incorrect)

	// citations
	result, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeCitations].Id, nil)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	citationArtifacts, err := store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeCitation)
	require.NoError(t, err)
	require.Len(t, citationArtifacts, 1)
	var refs CitationReportSourceRef
	require.NoError(t, json.Unmarshal(citationArtifacts[0].SourceRefs, &refs))
	assert.Equal(t, 6, refs.ArtifactsAnalyzed)
	assert.Greater(t, refs.TotalCitations, 0)
}

func TestCheckerShortAnswerIsIncorrect(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)
	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeExtract].Id, nil)
	require.NoError(t, err)
	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypePractice].Id, mustJSON(PracticeInput{QuestionCount: 1}))
	require.NoError(t, err)

	sessions, err := store.PracticeSessionRepository().ListByMission(ctx, missionId)
	require.NoError(t, err)
	items, err := store.PracticeItemRepository().ListBySession(ctx, sessions[0].Id)
	require.NoError(t, err)

	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeChecker].Id, mustJSON(CheckerInput{
		SessionId:  sessions[0].Id,
		ItemId:     items[0].Id,
		UserAnswer: "too short",
	}))
	require.NoError(t, err)

	checked, err := store.PracticeItemRepository().FindByIdInSession(ctx, items[0].Id, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, constant.PracticeItemIncorrect, checked.State)

	session, err := store.PracticeSessionRepository().FindById(ctx, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score.Attempted)
	assert.Equal(t, 1, session.Score.Incorrect)
}

func TestCheckerRecheckKeepsScoreStable(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)
	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeExtract].Id, nil)
	require.NoError(t, err)
	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypePractice].Id, mustJSON(PracticeInput{QuestionCount: 1}))
	require.NoError(t, err)

	sessions, err := store.PracticeSessionRepository().ListByMission(ctx, missionId)
	require.NoError(t, err)
	items, err := store.PracticeItemRepository().ListBySession(ctx, sessions[0].Id)
	require.NoError(t, err)

	checkerBox := boxes[constant.BoxTypeChecker]
	answer := strings.Repeat("The square on the hypotenuse ", 4)
	input := mustJSON(CheckerInput{
		SessionId:  sessions[0].Id,
		ItemId:     items[0].Id,
		UserAnswer: answer,
	})
	_, err = r.Run(ctx, store, missionId, checkerBox.Id, input)
	require.NoError(t, err)

	// re-arm the box; checking the same item again must not inflate
	// the session score
	checkerBox.State = constant.BoxStateIdle
	require.NoError(t, store.MissionBoxRepository().Update(ctx, checkerBox))

	_, err = r.Run(ctx, store, missionId, checkerBox.Id, input)
	require.NoError(t, err)

	checked, err := store.PracticeItemRepository().FindByIdInSession(ctx, items[0].Id, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, constant.PracticeItemCorrect, checked.State)

	session, err := store.PracticeSessionRepository().FindById(ctx, sessions[0].Id)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score.Attempted)
	assert.Equal(t, 1, session.Score.Correct)
	assert.Equal(t, 0, session.Score.Incorrect)
}

func TestCitationsRerunAppendsNewReport(t *testing.T) {
	store := memory.NewStore()
	missionId, boxes := createExamPrepMission(t, store)
	ctx := context.Background()
	docId := seedDocument(t, store)

	r := newTestRunner(examText)
	_, err := r.Run(ctx, store, missionId, boxes[constant.BoxTypeInbox].Id, mustJSON(InboxInput{DocumentIds: []uuid.UUID{docId}}))
	require.NoError(t, err)
	_, err = r.Run(ctx, store, missionId, boxes[constant.BoxTypeExtract].Id, nil)
	require.NoError(t, err)

	citationsBox := boxes[constant.BoxTypeCitations]
	_, err = r.Run(ctx, store, missionId, citationsBox.Id, nil)
	require.NoError(t, err)

	reports, err := store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeCitation)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	var first CitationReportSourceRef
	require.NoError(t, json.Unmarshal(reports[0].SourceRefs, &first))

	citationsBox.State = constant.BoxStateIdle
	require.NoError(t, store.MissionBoxRepository().Update(ctx, citationsBox))

	// a rerun appends a fresh report that counts the earlier one in
	// its artifact tally
	_, err = r.Run(ctx, store, missionId, citationsBox.Id, nil)
	require.NoError(t, err)

	reports, err = store.MissionArtifactRepository().ListByMissionAndType(ctx, missionId, constant.ArtifactTypeCitation)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	var second CitationReportSourceRef
	require.NoError(t, json.Unmarshal(reports[1].SourceRefs, &second))
	assert.Equal(t, first.ArtifactsAnalyzed+1, second.ArtifactsAnalyzed)
}
