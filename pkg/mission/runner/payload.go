package runner

import "github.com/google/uuid"

// Stage input contracts. Each handler decodes only its own type; the
// runner passes the raw payload through untouched.

type InboxInput struct {
	DocumentIds []uuid.UUID `json:"artifact_ids"`
}

type AskInput struct {
	Question string `json:"question"`
	// nil means the stage default (search enabled)
	UseSearch *bool `json:"use_search"`
}

type PracticeInput struct {
	QuestionCount int    `json:"question_count"`
	TopicKeywords string `json:"topic_keywords"`
}

type CheckerInput struct {
	SessionId  uuid.UUID `json:"session_id"`
	ItemId     uuid.UUID `json:"item_id"`
	UserAnswer string    `json:"user_answer"`
}

// Artifact content payloads, typed per producing stage.

type DocumentContent struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
}

type DocumentSourceRef struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
}

type NoteContent struct {
	ReportMd string `json:"report_md"`
}

type NoteSourceRef struct {
	ArtifactsProcessed int `json:"artifacts_processed"`
	ChunksCreated      int `json:"chunks_created"`
}

type Citation struct {
	ChunkId    uuid.UUID `json:"chunk_id"`
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename,omitempty"`
	Relevance  float64   `json:"relevance"`
}

type QAContent struct {
	Question   string     `json:"question"`
	AnswerMd   string     `json:"answer_md"`
	Citations  []Citation `json:"citations"`
	Confidence string     `json:"confidence"`
	Method     string     `json:"method"`
	UseSearch  bool       `json:"use_search"`
}

// CitationSourceRefs is the shared source_refs shape the citations stage
// scans for: any artifact whose refs carry a "citations" list contributes
// to the tally.
type CitationSourceRefs struct {
	Citations []Citation `json:"citations"`
}

type PracticeContent struct {
	SessionId     uuid.UUID `json:"session_id"`
	QuestionCount int       `json:"question_count"`
	Topic         string    `json:"topic"`
}

type PracticeSourceRef struct {
	SessionId  uuid.UUID `json:"session_id"`
	ChunksUsed int       `json:"chunks_used"`
}

type VerificationContent struct {
	VerificationMd string `json:"verification_md"`
}

type VerificationSourceRef struct {
	SessionId uuid.UUID `json:"session_id"`
	ItemId    uuid.UUID `json:"item_id"`
	Result    string    `json:"result"`
}

type CitationReportContent struct {
	ReportMd string `json:"report_md"`
}

type CitationReportSourceRef struct {
	TotalCitations    int `json:"total_citations"`
	UniqueChunks      int `json:"unique_chunks"`
	ArtifactsAnalyzed int `json:"artifacts_analyzed"`
}
