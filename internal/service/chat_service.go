package service

import (
	"context"
	"time"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/agent"
	"ai-knowledgebase-be/pkg/events"
	pkgNats "ai-knowledgebase-be/pkg/nats"

	"github.com/google/uuid"
)

// structuringTimeout bounds the background structuring pass. The request
// context is gone by then, so the pass runs on its own deadline.
const structuringTimeout = 60 * time.Second

type IChatService interface {
	// Ask answers a question within a session: the user message and the raw
	// answer are persisted immediately, structuring runs in the background
	// and upgrades the assistant message when it completes.
	Ask(ctx context.Context, sessionId uuid.UUID, question, model string) (*dto.QueryResponse, string, error)
	Structure(ctx context.Context, rawAnswer, question string) *entity.StructuredResponse
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	agentService   IAgentService
	structurer     IStructurerService
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	agentService IAgentService,
	structurer IStructurerService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		agentService:   agentService,
		structurer:     structurer,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatService) Ask(ctx context.Context, sessionId uuid.UUID, question, model string) (*dto.QueryResponse, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, "", err
	}
	if session == nil {
		return nil, "", apperror.NotFound("Session not found")
	}

	now := time.Now()
	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          entity.ChatMessageRoleUser,
		Content:       question,
		Sources:       []entity.Source{},
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, "", err
	}

	result, err := s.agentService.Query(ctx, sessionId.String(), question, model)
	if err != nil {
		return nil, "", err
	}

	confidence := result.Confidence
	assistantMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          entity.ChatMessageRoleAssistant,
		Content:       result.Answer,
		Sources:       parsedSourcesToEntities(result.Sources),
		Confidence:    &confidence,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		return nil, "", err
	}

	// Optimistic counter bump; the session read path repairs drift.
	session.MessageCount += 2
	session.LastActivity = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		s.log.Warn("chat", "Failed to update session counters", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewQueryAnswered(sessionId.String(), question, result.Confidence)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("chat", "Failed to publish QUERY_ANSWERED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Structuring is best-effort and non-blocking: the answer has already
	// been persisted, and a structuring failure leaves it as-is. The canned
	// no-document answer stays as stored; there is nothing to structure.
	if !result.NoDocuments {
		go s.structureInBackground(assistantMsg.Id, result.RawResponse, question)
	}

	res := &dto.QueryResponse{
		Answer:     result.Answer,
		Sources:    parsedSourcesToDTO(result.Sources),
		Confidence: result.Confidence,
		MessageId:  assistantMsg.Id.String(),
	}
	return res, result.Warning, nil
}

func (s *chatService) Structure(ctx context.Context, rawAnswer, question string) *entity.StructuredResponse {
	return s.structurer.Structure(ctx, rawAnswer, question)
}

func (s *chatService) structureInBackground(messageId uuid.UUID, rawResponse, question string) {
	ctx, cancel := context.WithTimeout(context.Background(), structuringTimeout)
	defer cancel()

	structured := s.structurer.Structure(ctx, rawResponse, question)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil || msg == nil {
		s.log.Warn("chat", "Structured message no longer available", map[string]interface{}{
			"message_id": messageId.String(),
		})
		return
	}

	msg.Content = structured.Answer
	msg.Structured = structured
	if err := uow.ChatMessageRepository().Update(ctx, msg); err != nil {
		s.log.Warn("chat", "Failed to persist structured response", map[string]interface{}{
			"message_id": messageId.String(),
			"error":      err.Error(),
		})
	}
}

func parsedSourcesToEntities(sources []agent.ParsedSource) []entity.Source {
	out := make([]entity.Source, len(sources))
	for i, src := range sources {
		out[i] = entity.Source{
			Id:       src.Id,
			Document: src.Document,
			Snippet:  src.Snippet,
			Page:     src.Page,
		}
	}
	return out
}

func parsedSourcesToDTO(sources []agent.ParsedSource) []dto.SourceResponse {
	out := make([]dto.SourceResponse, len(sources))
	for i, src := range sources {
		out[i] = dto.SourceResponse{
			Id:       src.Id,
			Document: src.Document,
			Snippet:  src.Snippet,
			Page:     src.Page,
		}
	}
	return out
}
