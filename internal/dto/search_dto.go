package dto

type SearchRequest struct {
	Query string `query:"q" validate:"required,min=1"`
	Limit int    `query:"limit"`
}

type SearchHit struct {
	DocumentId string  `json:"document_id"`
	Name       string  `json:"name"`
	Snippet    string  `json:"snippet"`
	Rank       float64 `json:"rank"`
}

type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
	Total int         `json:"total"`
}
