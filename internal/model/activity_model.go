package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityItem struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string    `gorm:"type:varchar(32);not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Icon        string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (ActivityItem) TableName() string {
	return "activity_items"
}
