package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_UPLOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic Event implementation used both for publishing and
// for reconstructing events on the consuming side.
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

// Domain event type codes. Subscribers filter on these via the NATS subject.
const (
	TypeDocumentUploaded = "DOCUMENT_UPLOADED"
	TypeDocumentDeleted  = "DOCUMENT_DELETED"
	TypeQueryAnswered    = "QUERY_ANSWERED"
	TypeSessionCreated   = "SESSION_CREATED"
)

// NewDocumentUploaded builds the event recorded when an upload completes.
func NewDocumentUploaded(documentId, name string, textLength int) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
			"text_length": textLength,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentDeleted builds the event recorded when a document is removed.
func NewDocumentDeleted(documentId, name string) Event {
	return BaseEvent{
		Type: TypeDocumentDeleted,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
		},
		OccurredAt: time.Now(),
	}
}

// NewQueryAnswered builds the event recorded when a query returns an answer.
func NewQueryAnswered(sessionId, question string, confidence float64) Event {
	return BaseEvent{
		Type: TypeQueryAnswered,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"question":   question,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionCreated builds the event recorded when a chat session is created.
func NewSessionCreated(sessionId, name string) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"name":       name,
		},
		OccurredAt: time.Now(),
	}
}
