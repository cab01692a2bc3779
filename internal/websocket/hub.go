package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans upload task events out to connected clients. Connections are
// keyed by session so a client only sees progress for its own session;
// Redis relays events across instances when configured.
type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTaskEvent delivers a task event to every client watching its
// session, then relays it to other instances via Redis.
func (h *Hub) BroadcastTaskEvent(event dto.TaskEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "task_event",
		"data": event,
	})

	sessionId, err := uuid.Parse(event.SessionId)
	if err != nil {
		h.logger.Warn("Hub", "Task event with invalid session id", map[string]interface{}{"session_id": event.SessionId})
		return
	}

	h.sendLocal(sessionId, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": event.SessionId,
			"message":           data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "task_events", jsonPayload)
	}
}

func (h *Hub) sendLocal(sessionId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[sessionId]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister path owns channel closure; closing here too
			// would double-close on a slow client.
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session_id": sessionId})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "task_events"; each delivers to the
	// sessions it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "task_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}

		h.sendLocal(sid, payload.Message)
	}
}
