package dto

// AgentActionRequest is the polymorphic body of POST /api/agent/v1.
// Action selects which of the optional payload fields is consulted.
// SessionId is required per action: process_document and query run against
// a session, structure works on the raw answer alone.
type AgentActionRequest struct {
	Action    string `json:"action" validate:"required,oneof=process_document query structure"`
	SessionId string `json:"session_id" validate:"omitempty,uuid4"`

	// process_document
	DocumentName string `json:"document_name,omitempty"`
	Content      string `json:"content,omitempty"`

	// query
	Question string `json:"question,omitempty"`
	Model    string `json:"model,omitempty"`

	// structure
	RawAnswer string `json:"raw_answer,omitempty"`
}

type ProcessDocumentResponse struct {
	DocumentName string `json:"document_name"`
	Ingested     bool   `json:"ingested"`
	TextLength   int    `json:"text_length"`
}

type SourceResponse struct {
	Id        int    `json:"id"`
	Document  string `json:"document"`
	Snippet   string `json:"snippet"`
	Page      int    `json:"page"`
	Relevance string `json:"relevance,omitempty"`
	Type      string `json:"type,omitempty"`
}

type QueryResponse struct {
	Answer     string           `json:"answer"`
	Sources    []SourceResponse `json:"sources"`
	Confidence float64          `json:"confidence"`
	MessageId  string           `json:"message_id,omitempty"`
}

type StructuredItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type StructuredResponse struct {
	Answer        string           `json:"answer"`
	Confidence    float64          `json:"confidence"`
	Sources       []SourceResponse `json:"sources"`
	RelatedTopics []StructuredItem `json:"relatedTopics"`
	KeyInsights   []StructuredItem `json:"keyInsights"`
	ActionItems   []StructuredItem `json:"actionItems"`
	Tags          []string         `json:"tags"`
}
