package service

import (
	"context"
	"time"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/events"
	pkgNats "ai-knowledgebase-be/pkg/nats"

	"github.com/google/uuid"
)

const defaultPageLimit = 20

type IDocumentService interface {
	List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentDetailResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	agentService   IAgentService
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	agentService IAgentService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		agentService:   agentService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *documentService) List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	filterSpecs := []specification.Specification{}
	if req.Status != "" {
		filterSpecs = append(filterSpecs, specification.ByStatus{Status: req.Status})
	}
	if req.Type != "" {
		filterSpecs = append(filterSpecs, specification.Filter("type", req.Type))
	}

	total, err := uow.DocumentRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "uploaded_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	docs, err := uow.DocumentRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = *documentToResponse(doc)
	}

	return &dto.ListDocumentsResponse{
		Documents: responses,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("Document not found")
	}
	return documentToDetailResponse(doc), nil
}

func (s *documentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("Document not found")
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
	}
	if req.Region != nil {
		doc.Region = req.Region
	}
	if req.Version != nil {
		doc.Version = req.Version
	}
	now := time.Now()
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}
	return documentToResponse(doc), nil
}

// Delete soft-deletes the record and purges the document's text from the
// agent store so later queries no longer see it.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("Document not found")
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	// Purge the ingested text only when no live document still carries this
	// name; a name collision must not blind queries against the survivor.
	remaining, err := uow.DocumentRepository().Count(ctx,
		specification.ByName{Name: doc.Name},
		specification.NotDeleted{},
	)
	if err != nil {
		s.log.Warn("document", "Name collision check failed, purging store anyway", map[string]interface{}{
			"document": doc.Name,
			"error":    err.Error(),
		})
		remaining = 0
	}
	if remaining == 0 {
		s.agentService.RemoveDocumentEverywhere(doc.Name)
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentDeleted(id.String(), doc.Name)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("document", "Failed to publish DOCUMENT_DELETED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.DeleteDocumentResponse{Id: id.String(), Deleted: true}, nil
}
