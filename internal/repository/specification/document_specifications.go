package specification

import "gorm.io/gorm"

// ByStatus filters documents by processing status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// DocumentSearchQuery filters documents by name or extracted content
type DocumentSearchQuery struct {
	Query string
}

func (s DocumentSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	// ILIKE for Postgres (case insensitive)
	return db.Where("name ILIKE ? OR content ILIKE ?", pattern, pattern)
}

// ByName filters documents by exact name match (case-insensitive)
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", s.Name)
}
