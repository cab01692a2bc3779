package dto

import "time"

type DocumentResponse struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Size       string    `json:"size"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Confidence float64   `json:"confidence"`
	TextLength int       `json:"text_length"`
	Pages      int       `json:"pages"`
	Tags       []string  `json:"tags"`
	Region     *string   `json:"region,omitempty"`
	Version    *string   `json:"version,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type DocumentDetailResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

type ListDocumentsRequest struct {
	Status string `query:"status"`
	Type   string `query:"type"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

type UpdateDocumentRequest struct {
	Name    *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Tags    *[]string `json:"tags"`
	Region  *string   `json:"region"`
	Version *string   `json:"version"`
}

type DeleteDocumentResponse struct {
	Id      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
