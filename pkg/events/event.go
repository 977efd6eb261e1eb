package events

import "time"

// Mission lifecycle event types published to the bus.
const (
	MissionCreated = "MISSION_CREATED"
	MissionDeleted = "MISSION_DELETED"
	BoxCompleted   = "BOX_COMPLETED"
	BoxFailed      = "BOX_FAILED"
)

// Event is the contract for everything published on the missions stream.
type Event interface {
	// EventType returns the unique code for this event (e.g. "BOX_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation most publishers use.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
