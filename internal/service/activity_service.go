package service

import (
	"context"
	"time"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultActivityLimit = 50

type IActivityService interface {
	List(ctx context.Context, req *dto.ListActivitiesRequest) (*dto.ListActivitiesResponse, error)
	Record(ctx context.Context, activityType, title, description, icon string) error
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
	}
}

func (s *activityService) List(ctx context.Context, req *dto.ListActivitiesRequest) (*dto.ListActivitiesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit < 1 {
		limit = defaultActivityLimit
	}

	items, err := uow.ActivityRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, len(items))
	for i, item := range items {
		responses[i] = dto.ActivityResponse{
			Id:          item.Id.String(),
			Type:        item.Type,
			Title:       item.Title,
			Description: item.Description,
			Icon:        item.Icon,
			CreatedAt:   item.CreatedAt,
		}
	}

	return &dto.ListActivitiesResponse{Activities: responses}, nil
}

func (s *activityService) Record(ctx context.Context, activityType, title, description, icon string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item := entity.ActivityItem{
		Id:          uuid.New(),
		Type:        activityType,
		Title:       title,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now(),
	}
	return uow.ActivityRepository().Create(ctx, &item)
}
