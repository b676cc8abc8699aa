package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	websocket_model "github.com/secmon-lab/sentiq/pkg/domain/model/websocket"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

// Hub maintains the set of dashboards subscribed to the alert feed and
// broadcasts alert events to them.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Mutex to protect concurrent access to clients
	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

var _ interfaces.EventPublisher = &Hub{}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	userID   string
	clientID string

	ctx    context.Context
	cancel context.CancelFunc

	// Mutex to protect send channel
	mu sync.Mutex
}

const (
	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	maxClients = 256

	clientSendBufferSize = 64

	broadcastBufferSize = 128
)

func NewHub(ctx context.Context) *Hub {
	ctx, cancel := context.WithCancel(ctx)
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop and returns when the hub is closed.
func (h *Hub) Run() {
	logger := logging.From(h.ctx)
	logger.Info("alert feed hub started")

	defer func() {
		logger.Info("alert feed hub stopped")
		h.cancel()
	}()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// trySend queues data without blocking and reports whether it was queued.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.send == nil {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger := logging.From(h.ctx)

	if len(h.clients) >= maxClients {
		logger.Warn("maximum feed clients reached", "max_clients", maxClients)
		client.closeSend()
		return
	}

	h.clients[client] = true
	logger.Info("feed client registered",
		"user_id", client.userID,
		"client_id", client.clientID,
		"total_clients", len(h.clients))

	welcome := websocket_model.NewStatusMessage("Connected to alert feed")
	if data, err := welcome.ToBytes(); err == nil {
		if !client.trySend(data) {
			client.closeSend()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()

		logging.From(h.ctx).Info("feed client unregistered",
			"user_id", client.userID,
			"client_id", client.clientID,
			"remaining_clients", len(h.clients))
	}

	client.cancel()
}

func (h *Hub) broadcastToAll(message []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		if !client.trySend(message) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Clients that cannot keep up are dropped
	for _, client := range slow {
		h.unregisterClient(client)
	}
}

// Publish implements interfaces.EventPublisher. It never blocks; events are
// dropped when the broadcast queue is full.
func (h *Hub) Publish(ctx context.Context, ev event.AlertEvent) {
	msg := websocket_model.NewEventMessage(ev)
	if msg == nil {
		return
	}
	data, err := msg.ToBytes()
	if err != nil {
		logging.From(ctx).Warn("failed to marshal feed message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
	default:
		logging.From(ctx).Warn("alert feed queue full, event dropped", "type", msg.Type)
	}
}

func (h *Hub) NewClient(conn *websocket.Conn, userID string) *Client {
	ctx, cancel := context.WithCancel(h.ctx)
	return &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, clientSendBufferSize),
		userID:   userID,
		clientID: uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of connected dashboards
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and stops the hub
func (h *Hub) Close() error {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.cancel()
		client.closeSend()
	}
	h.clients = make(map[*Client]bool)
	return nil
}
