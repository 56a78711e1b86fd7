package notifications

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"irysworld/internal/observability"
)

const (
	maxConnsPerViewer = 12
	maxTotalConns     = 10000
)

// Hub maps viewer IDs to their live connections.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	logger     *observability.WSLogger
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[string]map[*Client]struct{}),
		logger: observability.NewWSLogger("feed"),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "feed hub" }

// Register a connection for a viewer. Returns an error when limits are exceeded.
func (h *Hub) Register(viewerID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[viewerID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[viewerID] = m
	}
	if len(m) >= maxConnsPerViewer {
		return nil, errors.New("viewer connection limit reached")
	}

	client := NewClient(h, conn, viewerID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()
	h.logger.LogConnect(context.Background(), viewerID)
	return client, nil
}

// UnregisterClient removes a client. Safe to call more than once.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.ViewerID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	h.totalConns--
	observability.WebSocketConnectionsTotal.Dec()
	if len(m) == 0 {
		delete(h.conns, client.ViewerID)
	}
	h.logger.LogDisconnect(context.Background(), client.ViewerID, "unregistered")
}

// BroadcastAll sends message to every connected websocket client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(data)
		}
	}
	observability.WebSocketEventsTotal.WithLabelValues("broadcast").Inc()
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalConns
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for viewerID, viewerConns := range h.conns {
		for client := range viewerConns {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for viewer %s: %v", viewerID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for viewer %s: %v", viewerID, err)
			}
		}
	}
	observability.WebSocketConnectionsTotal.Sub(float64(h.totalConns))
	h.conns = make(map[string]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
