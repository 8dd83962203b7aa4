package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = pongWait * 9 / 10
)

// HubConfig configures a Hub.
type HubConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	// ClientBuffer is the per-client queue length. A client whose queue is full is dropped.
	ClientBuffer int
	// History is the number of recent notifications replayed to new clients.
	History int
	// CheckOrigin overrides the upgrader's same-origin check.
	CheckOrigin func(r *http.Request) bool
}

// Hub broadcasts notifications to websocket clients.
type Hub struct {
	upgrader     websocket.Upgrader
	clientBuffer int
	historySize  int
	logger       *zap.Logger

	mu      sync.Mutex
	clients map[*hubClient]struct{}
	history []Notification
	closed  bool
}

type hubClient struct {
	conn *websocket.Conn
	send chan Notification
	once sync.Once
}

func (c *hubClient) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a Hub.
func NewHub(cfg HubConfig, logger *zap.Logger) *Hub {
	if cfg.ClientBuffer <= 0 {
		cfg.ClientBuffer = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		clientBuffer: cfg.ClientBuffer,
		historySize:  cfg.History,
		logger:       logger,
		clients:      make(map[*hubClient]struct{}),
	}
}

// Publish queues n for every client and appends it to the replay history.
func (h *Hub) Publish(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.historySize > 0 {
		h.history = append(h.history, n)
		if len(h.history) > h.historySize {
			h.history = h.history[len(h.history)-h.historySize:]
		}
	}
	for c := range h.clients {
		select {
		case c.send <- n:
		default:
			h.logger.Warn("Dropping slow notification client", zap.String("remote", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and streams notifications until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &hubClient{conn: conn, send: make(chan Notification, h.clientBuffer+h.historySize)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	for _, n := range h.history {
		c.send <- n
	}
	h.clients[c] = struct{}{}
	metrics.HubClients.Set(float64(len(h.clients)))
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(c)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) removeLocked(c *hubClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	metrics.HubClients.Set(float64(len(h.clients)))
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(c *hubClient) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case n, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(n); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}
