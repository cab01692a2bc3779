package service

import (
	"context"
	"fmt"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/pkg/events"
	pkgNats "ai-knowledgebase-be/pkg/nats"
)

// IActivityConsumerService turns domain events from the NATS bus into
// activity feed entries.
type IActivityConsumerService interface {
	Start() error
}

type activityConsumerService struct {
	subscriber      *pkgNats.Subscriber
	activityService IActivityService
	log             logger.ILogger
}

func NewActivityConsumerService(
	subscriber *pkgNats.Subscriber,
	activityService IActivityService,
	log logger.ILogger,
) IActivityConsumerService {
	return &activityConsumerService{
		subscriber:      subscriber,
		activityService: activityService,
		log:             log,
	}
}

func (s *activityConsumerService) Start() error {
	return s.subscriber.Subscribe("events.>", "activity-feed", s.handle)
}

func (s *activityConsumerService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	var activityType, title, description, icon string
	switch event.EventType() {
	case events.TypeDocumentUploaded:
		activityType = entity.ActivityTypeUpload
		title = fmt.Sprintf("Uploaded %v", payload["name"])
		description = fmt.Sprintf("Extracted %v characters", payload["text_length"])
		icon = "FileText"
	case events.TypeDocumentDeleted:
		activityType = entity.ActivityTypeDelete
		title = fmt.Sprintf("Deleted %v", payload["name"])
		description = "Document removed from the knowledge base"
		icon = "Trash"
	case events.TypeQueryAnswered:
		activityType = entity.ActivityTypeQuery
		title = "Question answered"
		description = fmt.Sprintf("%v", payload["question"])
		icon = "Search"
	case events.TypeSessionCreated:
		activityType = entity.ActivityTypeSession
		title = fmt.Sprintf("Started session %v", payload["name"])
		description = "New chat session created"
		icon = "MessageSquare"
	default:
		s.log.Debug("activity", "Ignoring unrecognized event type", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	if err := s.activityService.Record(ctx, activityType, title, description, icon); err != nil {
		s.log.Error("activity", "Failed to record activity", map[string]interface{}{
			"type":  activityType,
			"error": err.Error(),
		})
		return err
	}
	return nil
}
