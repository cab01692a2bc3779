package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusError      = "error"
)

// Document is an uploaded file after text extraction. Content holds the
// extracted (possibly summarized) text, not the original bytes.
type Document struct {
	Id         uuid.UUID
	Name       string
	Size       string // display label, e.g. "1.25 MB"
	Type       string
	Content    string
	Status     string
	Confidence float64 // extraction quality in [0,1]
	TextLength int
	Pages      int
	Tags       []string
	Region     *string
	Version    *string
	UploadedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
