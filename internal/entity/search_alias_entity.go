package entity

import "github.com/google/uuid"

// SearchAlias maps a query term to its canonical form. The retriever reads
// the table in both directions ("fsm" -> "finite state machine" and back).
type SearchAlias struct {
	Id            uuid.UUID
	Term          string
	CanonicalTerm string
}
