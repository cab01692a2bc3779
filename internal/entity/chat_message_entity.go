package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// ChatMessage is one turn in a session. Content starts as plain text and
// is replaced with structured HTML once background structuring finishes.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Sources       []Source
	Confidence    *float64
	Structured    *StructuredResponse
	CreatedAt     time.Time
}
