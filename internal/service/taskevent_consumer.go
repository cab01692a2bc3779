package service

import (
	"context"
	"encoding/json"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TaskEventSink receives upload task events for delivery to connected
// clients. Implemented by the websocket hub.
type TaskEventSink interface {
	BroadcastTaskEvent(event dto.TaskEvent)
}

type ITaskEventConsumerService interface {
	Consume(ctx context.Context) error
}

type taskEventConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sink      TaskEventSink
	log       logger.ILogger
}

func NewTaskEventConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sink TaskEventSink,
	log logger.ILogger,
) ITaskEventConsumerService {
	return &taskEventConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sink:      sink,
		log:       log,
	}
}

func (cs *taskEventConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *taskEventConsumerService) processMessage(msg *message.Message) {
	var event dto.TaskEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("taskevents", "Failed to unmarshal task event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.sink.BroadcastTaskEvent(event)
	msg.Ack()
}
