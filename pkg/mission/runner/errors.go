package runner

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrBoxNotFound            = errors.New("box not found in mission")
	ErrAlreadyRunning         = errors.New("box is already running")
	ErrInvalidStateTransition = errors.New("box cannot run from its current state")
	ErrUnimplementedBoxType   = errors.New("box type not implemented")
	ErrMissingInput           = errors.New("required input missing")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrItemNotFound           = errors.New("practice item not found")
	ErrNoDocuments            = errors.New("no documents linked to mission")
	ErrNoChunks               = errors.New("no chunks found for mission documents")
)

// BoxRunnerError wraps any stage failure after the box has been marked
// running. The box is left in state error with last_error set; retrying is
// just invoking the run again.
type BoxRunnerError struct {
	BoxId uuid.UUID
	Err   error
}

func (e *BoxRunnerError) Error() string {
	return fmt.Sprintf("box %s execution failed: %v", e.BoxId, e.Err)
}

func (e *BoxRunnerError) Unwrap() error {
	return e.Err
}
