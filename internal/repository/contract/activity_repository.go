package contract

import (
	"context"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"
)

type ActivityRepository interface {
	Create(ctx context.Context, item *entity.ActivityItem) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
