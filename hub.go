package bustracker

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	clientSendSize = 256
	writeWait      = 10 * time.Second
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The page is served from the same origin; no cross-origin policy here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans marker frames and status transitions out to connected browsers.
// Each client gets a buffered send channel and a single write goroutine; a
// slow client drops frames rather than stalling the broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*hubClient
	logger  zerolog.Logger
}

type hubClient struct {
	id     string
	conn   *ws.Conn
	sendCh chan []byte
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{clients: map[string]*hubClient{}, logger: logger}
}

// Handle upgrades the request and services the client until it disconnects.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &hubClient{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, clientSendSize),
	}
	h.register(c)
	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) register(c *hubClient) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	websocketClients.Inc()
	h.logger.Debug().Str("client", c.id).Msg("websocket client connected")
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	if ok {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	close(c.sendCh)
	_ = c.conn.Close()
	websocketClients.Dec()
	h.logger.Debug().Str("client", c.id).Msg("websocket client disconnected")
}

// writeLoop drains the client's send channel and writes to the socket.
func (h *Hub) writeLoop(c *hubClient) {
	for data := range c.sendCh {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.unregister(c)
			return
		}
		if err := c.conn.WriteMessage(ws.TextMessage, data); err != nil {
			h.logger.Warn().Str("client", c.id).Err(err).Msg("websocket write error")
			h.unregister(c)
			return
		}
	}
}

// readLoop discards inbound messages; its job is to notice disconnects.
func (h *Hub) readLoop(c *hubClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.unregister(c)
			return
		}
	}
}

// Broadcast marshals v and queues it to every client. Clients with a full
// send buffer miss the message.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("broadcast marshal failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.sendCh <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		h.unregister(c)
	}
}
