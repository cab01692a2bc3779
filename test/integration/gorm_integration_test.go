package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Activity Repository", func(t *testing.T) {
		count, err := uow.ActivityRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Activity count: %d", count)
	})

	t.Run("Check Transactional Session And Message", func(t *testing.T) {
		ctx := context.Background()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		now := time.Now()
		sessionId := uuid.New()
		session := &entity.ChatSession{
			Id:           sessionId,
			Name:         "Integration Test Session " + uuid.New().String(),
			LastActivity: &now,
			CreatedAt:    now,
		}

		err = uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		confidence := 0.85
		msg := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Role:          entity.ChatMessageRoleAssistant,
			Content:       "Integration test answer",
			Sources: []entity.Source{
				{Id: 1, Document: "test.txt", Snippet: "snippet", Page: 1},
			},
			Confidence: &confidence,
			CreatedAt:  now,
		}

		err = uow.ChatMessageRepository().Create(ctx, msg)
		assert.NoError(t, err)

		found, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: msg.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Len(t, found.Sources, 1)

		assistants, err := uow.ChatMessageRepository().Count(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.ByRole{Role: entity.ChatMessageRoleAssistant},
		)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, assistants)

		users, err := uow.ChatMessageRepository().Count(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.ByRole{Role: entity.ChatMessageRoleUser},
		)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, users)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Session with Message in Transaction")
	})

	t.Run("Check Document Filter Specifications", func(t *testing.T) {
		ctx := context.Background()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		name := "spec-check-" + uuid.New().String() + ".txt"
		now := time.Now()
		doc := &entity.Document{
			Id:         uuid.New(),
			Name:       name,
			Type:       "text/plain",
			Status:     entity.DocumentStatusReady,
			UploadedAt: now,
			CreatedAt:  now,
		}
		err = uow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		count, err := uow.DocumentRepository().Count(ctx,
			specification.ByName{Name: name},
			specification.NotDeleted{},
		)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, count)

		count, err = uow.DocumentRepository().Count(ctx,
			specification.ByName{Name: name},
			specification.Filter("type", "application/pdf"),
		)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, count)

		err = uow.DocumentRepository().Delete(ctx, doc.Id)
		assert.NoError(t, err)

		count, err = uow.DocumentRepository().Count(ctx,
			specification.ByName{Name: name},
			specification.NotDeleted{},
		)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})
}
