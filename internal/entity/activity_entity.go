package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityTypeUpload  = "upload"
	ActivityTypeQuery   = "query"
	ActivityTypeSession = "session"
	ActivityTypeDelete  = "delete"
)

type ActivityItem struct {
	Id          uuid.UUID
	Type        string
	Title       string
	Description string
	Icon        string
	CreatedAt   time.Time
}
