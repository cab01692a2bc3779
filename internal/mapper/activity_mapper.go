package mapper

import (
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/model"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityItem) *entity.ActivityItem {
	if a == nil {
		return nil
	}
	return &entity.ActivityItem{
		Id:          a.Id,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.ActivityItem) *model.ActivityItem {
	if a == nil {
		return nil
	}
	return &model.ActivityItem{
		Id:          a.Id,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityMapper) ToEntities(items []*model.ActivityItem) []*entity.ActivityItem {
	entities := make([]*entity.ActivityItem, len(items))
	for i, a := range items {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
