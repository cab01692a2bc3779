package service

import (
	"context"
	"testing"
	"time"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_DeletePurgesStoreOnlyWhenNameGone(t *testing.T) {
	uow := newFakeUow()
	store := memory.NewDocumentStore(time.Minute, time.Minute)
	agentSvc := NewAgentService(&stubChatter{reply: "ok"}, store, nopLogger{})
	svc := NewDocumentService(uow, agentSvc, nil, nopLogger{})

	store.Save("session-1", memory.StoredDocument{Name: "report.txt", Content: "ingested text"})

	now := time.Now()
	first := &entity.Document{Id: uuid.New(), Name: "report.txt", Status: entity.DocumentStatusReady, UploadedAt: now, CreatedAt: now}
	second := &entity.Document{Id: uuid.New(), Name: "report.txt", Status: entity.DocumentStatusReady, UploadedAt: now, CreatedAt: now}
	uow.documents.put(first)
	uow.documents.put(second)

	res, err := svc.Delete(context.Background(), first.Id)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	// A live document still carries the name, so its ingested text stays
	// queryable.
	assert.Equal(t, 1, store.Count("session-1"))

	_, err = svc.Delete(context.Background(), second.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Count("session-1"))
}

func TestDocumentService_DeleteUnknownDocument(t *testing.T) {
	uow := newFakeUow()
	store := memory.NewDocumentStore(time.Minute, time.Minute)
	agentSvc := NewAgentService(&stubChatter{reply: "ok"}, store, nopLogger{})
	svc := NewDocumentService(uow, agentSvc, nil, nopLogger{})

	_, err := svc.Delete(context.Background(), uuid.New())

	require.Error(t, err)
}
