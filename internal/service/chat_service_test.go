package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/memory"
	"ai-knowledgebase-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStructurer records invocations; done is closed on the first call so
// tests can wait for the background pass.
type stubStructurer struct {
	mu     sync.Mutex
	calls  int
	result *entity.StructuredResponse
	done   chan struct{}
}

func (s *stubStructurer) Structure(ctx context.Context, rawAnswer, userQuestion string) *entity.StructuredResponse {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()
	if first && s.done != nil {
		close(s.done)
	}
	return s.result
}

func (s *stubStructurer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestChatService_ZeroDocumentQuerySkipsStructuring(t *testing.T) {
	uow := newFakeUow()
	store := memory.NewDocumentStore(time.Minute, time.Minute)
	chatter := &stubChatter{reply: "should never be used"}
	agentSvc := NewAgentService(chatter, store, nopLogger{})
	structurer := &stubStructurer{result: &entity.StructuredResponse{Answer: "<p>structured</p>"}}
	svc := NewChatService(uow, agentSvc, structurer, nil, nopLogger{})

	sessionId := uuid.New()
	uow.sessions.put(&entity.ChatSession{Id: sessionId, Name: "Empty", CreatedAt: time.Now()})

	res, warning, err := svc.Ask(context.Background(), sessionId, "anything yet?", "default")

	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Contains(t, res.Answer, "No documents have been uploaded yet")
	assert.Zero(t, res.Confidence)
	assert.Equal(t, 0, chatter.calls)

	// The canned answer has no raw reply behind it, so no background pass
	// may run and the stored message must keep the canned content.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, structurer.callCount())

	messageId, err := uuid.Parse(res.MessageId)
	require.NoError(t, err)
	stored, err := uow.messages.FindOne(context.Background(), specification.ByID{ID: messageId})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, res.Answer, stored.Content)
	assert.Nil(t, stored.Structured)
}

func TestChatService_StructuringUpgradesAssistantMessage(t *testing.T) {
	uow := newFakeUow()
	store := memory.NewDocumentStore(time.Minute, time.Minute)
	chatter := &stubChatter{reply: "ANSWER: from docs\n\nCONFIDENCE: 90%"}
	agentSvc := NewAgentService(chatter, store, nopLogger{})
	structurer := &stubStructurer{
		result: &entity.StructuredResponse{Answer: "<p>structured</p>", Confidence: 0.9},
		done:   make(chan struct{}),
	}
	svc := NewChatService(uow, agentSvc, structurer, nil, nopLogger{})

	sessionId := uuid.New()
	uow.sessions.put(&entity.ChatSession{Id: sessionId, Name: "Research", CreatedAt: time.Now()})
	store.Save(sessionId.String(), memory.StoredDocument{Name: "a.txt", Content: "alpha"})

	res, _, err := svc.Ask(context.Background(), sessionId, "what?", "default")

	require.NoError(t, err)
	assert.Equal(t, "from docs", res.Answer)

	select {
	case <-structurer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("background structuring never ran")
	}

	messageId, err := uuid.Parse(res.MessageId)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		stored, _ := uow.messages.FindOne(context.Background(), specification.ByID{ID: messageId})
		return stored != nil && stored.Structured != nil
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := uow.messages.FindOne(context.Background(), specification.ByID{ID: messageId})
	require.NoError(t, err)
	assert.Equal(t, "<p>structured</p>", stored.Content)
}

func TestChatService_AskUnknownSession(t *testing.T) {
	uow := newFakeUow()
	store := memory.NewDocumentStore(time.Minute, time.Minute)
	agentSvc := NewAgentService(&stubChatter{reply: "ok"}, store, nopLogger{})
	structurer := &stubStructurer{result: &entity.StructuredResponse{}}
	svc := NewChatService(uow, agentSvc, structurer, nil, nopLogger{})

	_, _, err := svc.Ask(context.Background(), uuid.New(), "hello?", "default")

	require.Error(t, err)
}
