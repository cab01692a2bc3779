package dto

import "time"

type CreateSessionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type SessionResponse struct {
	Id             string     `json:"id"`
	Name           string     `json:"name"`
	MessageCount   int        `json:"message_count"`
	DocumentsCount int        `json:"documents_count"`
	LastActivity   *time.Time `json:"last_activity,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
}

type MessageResponse struct {
	Id         string              `json:"id"`
	SessionId  string              `json:"session_id"`
	Role       string              `json:"role"`
	Content    string              `json:"content"`
	Sources    []SourceResponse    `json:"sources"`
	Confidence *float64            `json:"confidence,omitempty"`
	Structured *StructuredResponse `json:"structured,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type ListMessagesRequest struct {
	Role string `query:"role" validate:"omitempty,oneof=user assistant system"`
}

type ListMessagesResponse struct {
	SessionId string            `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
}

type RenameSessionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
