package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// wsMessage is the envelope pushed to connected wizard clients
type wsMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// WebSocketHandler pushes pipeline phase events to connected wizard clients
type WebSocketHandler struct {
	logger           arbor.ILogger
	clients          map[*websocket.Conn]*sync.Mutex
	mu               sync.RWMutex
	serverInstanceID string // Clients use this to detect server restart
}

// NewWebSocketHandler creates a websocket handler subscribed to pipeline events
func NewWebSocketHandler(eventService interfaces.EventService, logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		logger:           logger,
		clients:          make(map[*websocket.Conn]*sync.Mutex),
		serverInstanceID: uuid.New().String(),
	}

	for _, eventType := range []interfaces.EventType{
		interfaces.EventPipelinePhase,
		interfaces.EventPipelineComplete,
		interfaces.EventPipelineError,
		interfaces.EventSessionExpired,
	} {
		et := eventType
		eventService.Subscribe(et, func(ctx context.Context, event interfaces.Event) error {
			h.broadcast(string(et), event.Payload)
			return nil
		})
	}

	return h
}

// HandleWebSocket handles GET /ws - upgrades the connection and registers
// the client for event broadcast
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Int("clients", count).Msg("WebSocket client connected")

	// Tell the client which server instance it is talking to so it can
	// detect restarts and resynchronize wizard state.
	h.send(conn, wsMessage{
		Type:      "hello",
		Payload:   map[string]string{"server_instance_id": h.serverInstanceID},
		Timestamp: time.Now(),
	})

	// Reader loop exists only to detect disconnect; clients never send
	// meaningful frames.
	go func() {
		defer h.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *WebSocketHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	conn.Close()
	h.logger.Debug().Int("clients", count).Msg("WebSocket client disconnected")
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msg wsMessage) error {
	h.mu.RLock()
	writeMu, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}

// broadcast fans an event out to every connected client
func (h *WebSocketHandler) broadcast(eventType string, payload interface{}) {
	msg := wsMessage{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := h.send(conn, msg); err != nil {
			h.logger.Debug().Err(err).Msg("WebSocket write failed, dropping client")
			h.removeClient(conn)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
