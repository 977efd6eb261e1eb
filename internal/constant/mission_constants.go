package constant

// BoxType identifies a pipeline stage. The set is closed: the runner keeps
// an explicit handler per type and anything else fails the run.
type BoxType string

const (
	BoxTypeInbox     BoxType = "inbox"
	BoxTypeExtract   BoxType = "extract"
	BoxTypeAsk       BoxType = "ask"
	BoxTypePractice  BoxType = "practice"
	BoxTypeChecker   BoxType = "checker"
	BoxTypeCitations BoxType = "citations"
)

const (
	BoxStateIdle    = "idle"
	BoxStateReady   = "ready"
	BoxStateRunning = "running"
	BoxStateDone    = "done"
	BoxStateError   = "error"
)

const (
	MissionTypeExamPrep   = "exam_prep"
	MissionTypeCodeReview = "code_review"
	MissionTypeResearch   = "research"
)

const (
	MissionStateDraft   = "draft"
	MissionStateActive  = "active"
	MissionStateBlocked = "blocked"
	MissionStateDone    = "done"
)

// MissionStates lists every valid mission lifecycle state.
var MissionStates = []string{
	MissionStateDraft,
	MissionStateActive,
	MissionStateBlocked,
	MissionStateDone,
}

func IsValidMissionState(state string) bool {
	for _, s := range MissionStates {
		if s == state {
			return true
		}
	}
	return false
}

const (
	ArtifactTypeDocument        = "document"
	ArtifactTypeNote            = "note"
	ArtifactTypeQA              = "qa"
	ArtifactTypePracticeSession = "practice_session"
	ArtifactTypeVerification    = "verification"
	ArtifactTypeCitation        = "citation"
)

const (
	PracticeItemUnanswered = "unanswered"
	PracticeItemCorrect    = "correct"
	PracticeItemIncorrect  = "incorrect"
)

const (
	ChunkTypeParagraph = "paragraph"
	ChunkTypeFullText  = "full_text"
)
