package models

import "time"

// Event types written to the event log.
const (
	EventBuildingChange = "BUILDING_CHANGE"
	EventSimulation     = "SIMULATION"
	EventProject        = "PROJECT"
	EventError          = "ERROR"
)

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // BUILDING_CHANGE | SIMULATION | PROJECT | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
