package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession groups uploaded documents and chat messages. Counters are
// updated by separate follow-up calls and may lag the actual content;
// deleting a session never deletes its documents.
type ChatSession struct {
	Id             uuid.UUID
	Name           string
	MessageCount   int
	DocumentsCount int
	LastActivity   *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
