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
	"ai-knowledgebase-be/pkg/events"
	pkgNats "ai-knowledgebase-be/pkg/nats"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context) (*dto.ListSessionsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Rename(ctx context.Context, id uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Messages(ctx context.Context, id uuid.UUID, req *dto.ListMessagesRequest) (*dto.ListMessagesResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	agentService   IAgentService
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	agentService IAgentService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		agentService:   agentService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionCreated(session.Id.String(), session.Name)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("session", "Failed to publish SESSION_CREATED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return sessionToResponse(&session), nil
}

func (s *sessionService) List(ctx context.Context) (*dto.ListSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "last_activity", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		repaired, err := s.repairCounters(ctx, uow, session)
		if err != nil {
			// Counters are advisory: serve the stored values on repair failure.
			repaired = session
		}
		responses[i] = *sessionToResponse(repaired)
	}

	return &dto.ListSessionsResponse{
		Sessions: responses,
		Total:    int64(len(responses)),
	}, nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found")
	}

	repaired, err := s.repairCounters(ctx, uow, session)
	if err != nil {
		repaired = session
	}
	return sessionToResponse(repaired), nil
}

func (s *sessionService) Rename(ctx context.Context, id uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found")
	}

	session.Name = req.Name
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

// Delete removes the session and its messages, and clears the session's
// slice of the agent document store. Documents persist independently.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("Session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.agentService.ClearSession(id.String())
	return nil
}

func (s *sessionService) Messages(ctx context.Context, id uuid.UUID, req *dto.ListMessagesRequest) (*dto.ListMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found")
	}

	specs := []specification.Specification{
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if req.Role != "" {
		specs = append(specs, specification.ByRole{Role: req.Role})
	}

	msgs, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, len(msgs))
	for i, msg := range msgs {
		responses[i] = *messageToResponse(msg)
	}

	return &dto.ListMessagesResponse{
		SessionId: id.String(),
		Messages:  responses,
	}, nil
}

// repairCounters reconciles the optimistic message counter against the
// actual message count. Counter updates ride on separate calls that can
// fail independently, so reads repair the drift.
func (s *sessionService) repairCounters(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession) (*entity.ChatSession, error) {
	actual, err := uow.ChatMessageRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		return nil, err
	}
	if int(actual) == session.MessageCount {
		return session, nil
	}

	session.MessageCount = int(actual)
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:             session.Id.String(),
		Name:           session.Name,
		MessageCount:   session.MessageCount,
		DocumentsCount: session.DocumentsCount,
		LastActivity:   session.LastActivity,
		CreatedAt:      session.CreatedAt,
	}
}

func messageToResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	sources := make([]dto.SourceResponse, len(msg.Sources))
	for i, src := range msg.Sources {
		sources[i] = dto.SourceResponse{
			Id:        src.Id,
			Document:  src.Document,
			Snippet:   src.Snippet,
			Page:      src.Page,
			Relevance: src.Relevance,
			Type:      src.Type,
		}
	}

	var structured *dto.StructuredResponse
	if msg.Structured != nil {
		structured = structuredToDTO(msg.Structured)
	}

	return &dto.MessageResponse{
		Id:         msg.Id.String(),
		SessionId:  msg.ChatSessionId.String(),
		Role:       msg.Role,
		Content:    msg.Content,
		Sources:    sources,
		Confidence: msg.Confidence,
		Structured: structured,
		CreatedAt:  msg.CreatedAt,
	}
}

func structuredToDTO(structured *entity.StructuredResponse) *dto.StructuredResponse {
	sources := make([]dto.SourceResponse, len(structured.Sources))
	for i, src := range structured.Sources {
		sources[i] = dto.SourceResponse{
			Id:        src.Id,
			Document:  src.Document,
			Snippet:   src.Snippet,
			Page:      src.Page,
			Relevance: src.Relevance,
			Type:      src.Type,
		}
	}

	return &dto.StructuredResponse{
		Answer:        structured.Answer,
		Confidence:    structured.Confidence,
		Sources:       sources,
		RelatedTopics: itemsToDTO(structured.RelatedTopics),
		KeyInsights:   itemsToDTO(structured.KeyInsights),
		ActionItems:   itemsToDTO(structured.ActionItems),
		Tags:          structured.Tags,
	}
}

func itemsToDTO(items []entity.StructuredItem) []dto.StructuredItem {
	out := make([]dto.StructuredItem, len(items))
	for i, item := range items {
		out[i] = dto.StructuredItem{
			Title:       item.Title,
			Description: item.Description,
			Icon:        item.Icon,
		}
	}
	return out
}
