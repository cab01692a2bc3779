package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/memory"
	"ai-knowledgebase-be/pkg/agent"
)

// documentSeparator joins all ingested documents into one query prompt body.
const documentSeparator = "\n\n---DOCUMENT SEPARATOR---\n\n"

const noDocumentsAnswer = "No documents have been uploaded yet. Please upload some documents first to get started with your knowledge base."

// QueryResult carries the parsed answer plus the raw agent reply, which the
// structuring stage consumes afterwards. NoDocuments marks the canned answer
// returned when the session has nothing ingested; there is no raw agent
// reply behind it, so callers skip structuring.
type QueryResult struct {
	Answer      string
	Sources     []agent.ParsedSource
	Confidence  float64
	RawResponse string
	Warning     string
	NoDocuments bool
}

// IngestResult reports a document ingestion. The document is usable for
// queries once stored locally even when the remote acknowledgment failed,
// in which case Warning is set.
type IngestResult struct {
	Warning string
}

// AgentChatter is the remote agent surface the service needs. Satisfied by
// *agent.Client; swapped for a stub in tests.
type AgentChatter interface {
	Chat(ctx context.Context, message string, model agent.ModelConfig) (string, error)
}

type IAgentService interface {
	ProcessDocument(ctx context.Context, sessionId, documentName, content, model string) (*IngestResult, error)
	Query(ctx context.Context, sessionId, question, model string) (*QueryResult, error)
	RemoveDocument(sessionId, documentName string)
	RemoveDocumentEverywhere(documentName string)
	ClearSession(sessionId string)
	DocumentCount(sessionId string) int
}

type agentService struct {
	client AgentChatter
	store  *memory.DocumentStore
	log    logger.ILogger
}

func NewAgentService(client AgentChatter, store *memory.DocumentStore, log logger.ILogger) IAgentService {
	return &agentService{
		client: client,
		store:  store,
		log:    log,
	}
}

// ProcessDocument stores the document text for the session and forwards it
// to the remote agent. Local storage alone makes the document queryable, so
// a remote failure surfaces as a warning rather than an error.
func (s *agentService) ProcessDocument(ctx context.Context, sessionId, documentName, content, model string) (*IngestResult, error) {
	s.store.Save(sessionId, memory.StoredDocument{
		Name:    documentName,
		Content: content,
		AddedAt: time.Now(),
	})

	message := fmt.Sprintf(`DOCUMENT PROCESSING REQUEST:

Please process and index this document for future queries:

%s

Confirm that you have processed and can answer questions about this document.`, content)

	if _, err := s.client.Chat(ctx, message, agent.ResolveModel(model)); err != nil {
		classified := s.classify(err)
		s.log.Warn("agent", "Remote ingestion failed, document stored locally", map[string]interface{}{
			"session_id": sessionId,
			"document":   documentName,
			"kind":       string(apperror.KindOf(classified)),
			"error":      err.Error(),
		})
		warning := "Agent processing unavailable, but document is ready for queries"
		if apperror.IsKind(classified, apperror.KindQuotaExceeded) {
			warning = "API credits exhausted, but document is ready for queries"
		}
		return &IngestResult{Warning: warning}, nil
	}

	return &IngestResult{}, nil
}

// Query answers a question against every document stored for the session.
// With no documents it short-circuits to a canned answer without a remote
// call; on remote failure it degrades to a fallback answer so queries never
// surface raw errors to the user.
func (s *agentService) Query(ctx context.Context, sessionId, question, model string) (*QueryResult, error) {
	docs := s.store.AllBySession(sessionId)
	if len(docs) == 0 {
		return &QueryResult{
			Answer:      noDocumentsAnswer,
			Sources:     []agent.ParsedSource{},
			Confidence:  0,
			RawResponse: noDocumentsAnswer,
			NoDocuments: true,
		}, nil
	}

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	allDocuments := strings.Join(contents, documentSeparator)

	message := fmt.Sprintf(`USER QUESTION: "%s"

AVAILABLE DOCUMENTS:
%s

Please answer the user's question based ONLY on the information in the provided documents. Follow the response format with ANSWER, SOURCES, and CONFIDENCE sections.`,
		question, allDocuments)

	raw, err := s.client.Chat(ctx, message, agent.ResolveModel(model))
	if err != nil {
		classified := s.classify(err)
		s.log.Warn("agent", "Query failed, returning fallback answer", map[string]interface{}{
			"session_id": sessionId,
			"kind":       string(apperror.KindOf(classified)),
			"error":      err.Error(),
		})
		return fallbackQueryResult(question), nil
	}

	parsed := agent.ParseResponse(raw)
	return &QueryResult{
		Answer:      parsed.Answer,
		Sources:     parsed.Sources,
		Confidence:  parsed.Confidence,
		RawResponse: raw,
	}, nil
}

func (s *agentService) RemoveDocument(sessionId, documentName string) {
	s.store.Remove(sessionId, documentName)
}

func (s *agentService) RemoveDocumentEverywhere(documentName string) {
	s.store.RemoveByName(documentName)
}

func (s *agentService) ClearSession(sessionId string) {
	s.store.Clear(sessionId)
}

func (s *agentService) DocumentCount(sessionId string) int {
	return s.store.Count(sessionId)
}

// classify maps a raw client error onto the failure taxonomy.
func (s *agentService) classify(err error) error {
	var apiErr *agent.APIError
	if errors.As(err, &apiErr) {
		return apperror.ClassifyRemote(apiErr.StatusCode, apiErr.Body)
	}
	return apperror.Agent("agent request failed", err)
}

// fallbackQueryResult is the degraded answer shown when the agent is
// unreachable. Built as a pure function of the question so failure paths
// stay independently testable.
func fallbackQueryResult(question string) *QueryResult {
	answer := fmt.Sprintf("I found information related to your question %q in the uploaded documents. However, I'm currently unable to process the full response due to API limitations. Please try rephrasing your question or contact support if this issue persists.", question)
	return &QueryResult{
		Answer: answer,
		Sources: []agent.ParsedSource{
			{
				Id:       1,
				Document: "Uploaded Documents",
				Snippet:  "Information available in your knowledge base",
				Page:     1,
			},
		},
		Confidence:  0.7,
		RawResponse: fmt.Sprintf("I found information related to your question %q in the uploaded documents.", question),
		Warning:     "Agent processing unavailable, showing fallback response",
	}
}
