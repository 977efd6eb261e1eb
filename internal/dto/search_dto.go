package dto

import (
	"academic-workflow-be/pkg/search"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query        string     `query:"q" validate:"required"`
	ClassId      *uuid.UUID `query:"class_id"`
	AssignmentId *uuid.UUID `query:"assignment_id"`
	Limit        int        `query:"limit"`
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}
