package mapper

import (
	"encoding/json"
	"time"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	tags := []string{}
	if len(d.Tags) > 0 {
		// Malformed tag payloads degrade to an empty list.
		_ = json.Unmarshal(d.Tags, &tags)
	}

	return &entity.Document{
		Id:         d.Id,
		Name:       d.Name,
		Size:       d.Size,
		Type:       d.Type,
		Content:    d.Content,
		Status:     d.Status,
		Confidence: d.Confidence,
		TextLength: d.TextLength,
		Pages:      d.Pages,
		Tags:       tags,
		Region:     d.Region,
		Version:    d.Version,
		UploadedAt: d.UploadedAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	return &model.Document{
		Id:         d.Id,
		Name:       d.Name,
		Size:       d.Size,
		Type:       d.Type,
		Content:    d.Content,
		Status:     d.Status,
		Confidence: d.Confidence,
		TextLength: d.TextLength,
		Pages:      d.Pages,
		Tags:       datatypes.JSON(tagsJSON),
		Region:     d.Region,
		Version:    d.Version,
		UploadedAt: d.UploadedAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
