package interfaces

import "context"

// EventType represents different event types in the system
type EventType string

const (
	EventPipelinePhase    EventType = "pipeline_phase"
	EventPipelineComplete EventType = "pipeline_complete"
	EventPipelineError    EventType = "pipeline_error"
	EventSessionExpired   EventType = "session_expired"
)

// Event represents a system event
type Event struct {
	Type    EventType
	Payload interface{}
}

// EventHandler is a function that handles events
type EventHandler func(ctx context.Context, event Event) error

// EventService manages the pub/sub event bus used to push pipeline progress
// to connected wizard clients
type EventService interface {
	// Subscribe to an event type
	Subscribe(eventType EventType, handler EventHandler) error

	// Publish an event to all subscribers asynchronously
	Publish(ctx context.Context, event Event) error

	// PublishSync publishes an event and waits for all handlers to complete
	PublishSync(ctx context.Context, event Event) error

	// Close shuts down the event service
	Close() error
}
