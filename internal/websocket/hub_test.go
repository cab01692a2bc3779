package websocket

import (
	"testing"
	"time"

	"ai-knowledgebase-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardLogger struct{}

func (discardLogger) Debug(module, message string, details map[string]interface{}) {}
func (discardLogger) Info(module, message string, details map[string]interface{})  {}
func (discardLogger) Warn(module, message string, details map[string]interface{})  {}
func (discardLogger) Error(module, message string, details map[string]interface{}) {}
func (discardLogger) Sync() error                                                  { return nil }

func taskEvent(sessionId uuid.UUID) dto.TaskEvent {
	return dto.TaskEvent{
		TaskId:    uuid.New().String(),
		SessionId: sessionId.String(),
		Phase:     "extracting",
		Progress:  42,
	}
}

func TestHub_BroadcastReachesOnlyItsSession(t *testing.T) {
	h := NewHub(nil, discardLogger{})
	go h.Run()

	sessionId := uuid.New()
	client := &Client{Hub: h, SessionID: sessionId, Send: make(chan []byte, 4)}
	h.register <- client

	other := &Client{Hub: h, SessionID: uuid.New(), Send: make(chan []byte, 4)}
	h.register <- other

	h.BroadcastTaskEvent(taskEvent(sessionId))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "task_event")
	case <-time.After(time.Second):
		t.Fatal("client never received the event")
	}
	assert.Empty(t, other.Send)
}

func TestHub_SlowClientDroppedWithoutPanic(t *testing.T) {
	h := NewHub(nil, discardLogger{})
	go h.Run()

	sessionId := uuid.New()
	client := &Client{Hub: h, SessionID: sessionId, Send: make(chan []byte, 1)}
	h.register <- client

	h.BroadcastTaskEvent(taskEvent(sessionId)) // fills the buffer
	h.BroadcastTaskEvent(taskEvent(sessionId)) // overflow: drop and unregister

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.clients[sessionId]
		return !ok
	}, time.Second, 10*time.Millisecond)

	// The buffered event is still readable, then the channel is closed,
	// exactly once, by the unregister path.
	_, ok := <-client.Send
	assert.True(t, ok)
	_, ok = <-client.Send
	assert.False(t, ok)

	// Broadcasting after the drop must not panic.
	h.BroadcastTaskEvent(taskEvent(sessionId))
}
