package service

import (
	"context"
	"strings"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
)

const (
	defaultSearchLimit = 10
	snippetRadius      = 80
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.DocumentSearchQuery{Query: req.Query},
		specification.OrderBy{Field: "uploaded_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.SearchHit, len(docs))
	for i, doc := range docs {
		hits[i] = dto.SearchHit{
			DocumentId: doc.Id.String(),
			Name:       doc.Name,
			Snippet:    snippetAround(doc.Content, req.Query),
			Rank:       doc.Confidence,
		}
	}

	return &dto.SearchResponse{
		Query: req.Query,
		Hits:  hits,
		Total: len(hits),
	}, nil
}

// snippetAround returns a window of text centered on the first match, or
// the head of the content when the match was on the document name only.
func snippetAround(content, query string) string {
	lowered := strings.ToLower(content)
	idx := strings.Index(lowered, strings.ToLower(query))
	if idx < 0 {
		if len(content) > 2*snippetRadius {
			return content[:2*snippetRadius] + "..."
		}
		return content
	}

	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + snippetRadius
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}
