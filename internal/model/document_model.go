package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Size       string    `gorm:"type:varchar(32)"`
	Type       string    `gorm:"type:varchar(128)"`
	Content    string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(16);not null;default:'processing'"`
	Confidence float64
	TextLength int
	Pages      int
	Tags       datatypes.JSON `gorm:"type:jsonb"`
	Region     *string        `gorm:"type:varchar(64)"`
	Version    *string        `gorm:"type:varchar(64)"`
	UploadedAt time.Time
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
