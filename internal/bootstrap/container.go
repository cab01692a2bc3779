package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-knowledgebase-be/internal/config"
	"ai-knowledgebase-be/internal/controller"
	"ai-knowledgebase-be/internal/handler"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/memory"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/internal/service"
	"ai-knowledgebase-be/internal/websocket"
	"ai-knowledgebase-be/pkg/agent"
	"ai-knowledgebase-be/pkg/llm/groq"

	pktNats "ai-knowledgebase-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// taskEventTopic is the in-process channel carrying upload progress events
// from the upload pipeline to the websocket hub.
const taskEventTopic = "task-events"

// Session document context follows the same lifetime the hosted agent gives
// its sessions. Stale sessions are swept out after a day of inactivity.
const (
	documentStoreTTL     = 24 * time.Hour
	documentStoreCleanup = 1 * time.Hour
)

type Container struct {
	// Controllers
	UploadController   controller.IUploadController
	AgentController    controller.IAgentController
	DocumentController controller.IDocumentController
	SessionController  controller.ISessionController
	ActivityController controller.IActivityController
	SearchController   controller.ISearchController

	// Background Services (Exposed for main.go to run)
	TaskEventConsumer service.ITaskEventConsumerService

	// WebSockets
	TaskEventHandler *handler.TaskEventHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/task_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. External Clients
	agentClient := agent.NewClient(cfg.Agent.APIKey, cfg.Agent.BaseURL, cfg.Agent.UserID)
	extractProvider := groq.NewGroqProvider(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.ExtractModel)
	structureProvider := groq.NewGroqProvider(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.StructureModel)

	// Session-scoped document context for the knowledge agent
	documentStore := memory.NewDocumentStore(documentStoreTTL, documentStoreCleanup)

	// 4. Services
	publisherService := service.NewPublisherService(taskEventTopic, pubSub)
	taskEventConsumer := service.NewTaskEventConsumerService(pubSub, taskEventTopic, wsHub, wsLogger)

	agentService := service.NewAgentService(agentClient, documentStore, sysLogger)
	extractorService := service.NewExtractorService(extractProvider, cfg.LLM.ExtractModel, sysLogger)
	structurerService := service.NewStructurerService(structureProvider, cfg.LLM.StructureModel, sysLogger)

	chatService := service.NewChatService(uowFactory, agentService, structurerService, natsPub, sysLogger)
	sessionService := service.NewSessionService(uowFactory, agentService, natsPub, sysLogger)
	documentService := service.NewDocumentService(uowFactory, agentService, natsPub, sysLogger)
	activityService := service.NewActivityService(uowFactory)
	searchService := service.NewSearchService(uowFactory)

	uploadService := service.NewUploadService(
		uowFactory,
		extractorService,
		agentService,
		publisherService,
		natsPub,
		cfg.Upload.MaxFileSizeMB,
		sysLogger,
	)

	// Activity feed worker consumes domain events off NATS
	activityConsumer := service.NewActivityConsumerService(natsSub, activityService, sysLogger)
	if natsSub != nil {
		go func() {
			if err := activityConsumer.Start(); err != nil {
				log.Printf("[WARN] Activity consumer stopped: %v", err)
			}
		}()
	}

	// Handler
	taskEventHandler := handler.NewTaskEventHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		UploadController:   controller.NewUploadController(uploadService),
		AgentController:    controller.NewAgentController(agentService, chatService),
		DocumentController: controller.NewDocumentController(documentService),
		SessionController:  controller.NewSessionController(sessionService),
		ActivityController: controller.NewActivityController(activityService),
		SearchController:   controller.NewSearchController(searchService),

		TaskEventConsumer: taskEventConsumer,

		TaskEventHandler: taskEventHandler,
		WebSocketHub:     wsHub,
	}
}
