package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters chat messages by their owning session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionID)
}

// ByRole filters chat messages by role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
