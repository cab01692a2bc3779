package mapper

import (
	"encoding/json"
	"time"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:             s.Id,
		Name:           s.Name,
		MessageCount:   s.MessageCount,
		DocumentsCount: s.DocumentsCount,
		LastActivity:   s.LastActivity,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:             s.Id,
		Name:           s.Name,
		MessageCount:   s.MessageCount,
		DocumentsCount: s.DocumentsCount,
		LastActivity:   s.LastActivity,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatMapper) SessionsToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	sources := []entity.Source{}
	if len(msg.Sources) > 0 {
		_ = json.Unmarshal(msg.Sources, &sources)
	}

	var structured *entity.StructuredResponse
	if len(msg.Structured) > 0 {
		var sr entity.StructuredResponse
		if err := json.Unmarshal(msg.Structured, &sr); err == nil {
			sr.Normalize()
			structured = &sr
		}
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Sources:       sources,
		Confidence:    msg.Confidence,
		Structured:    structured,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	sources := msg.Sources
	if sources == nil {
		sources = []entity.Source{}
	}
	sourcesJSON, _ := json.Marshal(sources)

	var structuredJSON datatypes.JSON
	if msg.Structured != nil {
		b, _ := json.Marshal(msg.Structured)
		structuredJSON = datatypes.JSON(b)
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Sources:       datatypes.JSON(sourcesJSON),
		Confidence:    msg.Confidence,
		Structured:    structuredJSON,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
