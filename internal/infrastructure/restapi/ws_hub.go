package restapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"swap_desk/internal/app/port"
	"swap_desk/internal/domain/entity"
	"swap_desk/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The swap UI may be served from another origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// wsClient pairs a connection with its write lock. gorilla/websocket
// allows only one concurrent writer per connection, and the status ticker
// and route cues broadcast from different goroutines.
type wsClient struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (c *wsClient) write(msg wsMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(msg)
}

// Hub fans status updates and route-ready cues out to websocket clients.
// It implements port.RouteNotifier: a dead client is dropped, the
// operation that triggered the broadcast is never affected.
type Hub struct {
	logger         port.Logger
	statusInterval time.Duration

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewHub creates a hub broadcasting status frames at the given interval.
func NewHub(logger port.Logger, statusInterval time.Duration) *Hub {
	return &Hub{
		logger:         logger,
		statusInterval: statusInterval,
		clients:        make(map[*wsClient]struct{}),
	}
}

// Run emits periodic status_update frames until the context is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(wsMessage{
				Type: "status_update",
				Data: gin.H{
					"timestamp":   time.Now().UnixMilli(),
					"connections": h.clientCount(),
				},
			})
		}
	}
}

// RouteReady implements port.RouteNotifier.
func (h *Hub) RouteReady(route entity.RouteResult) {
	h.broadcast(wsMessage{Type: "route_ready", Data: route})
}

// ServeWS handles GET /ws.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	metrics.WSClients.Inc()
	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	// Reader loop exists only to observe the close handshake; inbound
	// frames are ignored.
	go func() {
		defer h.drop(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.write(msg); err != nil {
			h.logger.Debug("dropping websocket client after write failure", "error", err)
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	_, present := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if present {
		metrics.WSClients.Dec()
		client.conn.Close()
	}
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()
	for _, client := range clients {
		h.drop(client)
	}
}
