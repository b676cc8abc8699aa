package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	websocket_model "github.com/secmon-lab/sentiq/pkg/domain/model/websocket"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/user"
)

// Handler upgrades dashboard connections and attaches them to the hub
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// HandleAlertFeed streams alert events to the connected dashboard
func (h *Handler) HandleAlertFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	userID := user.Actor(ctx)
	if userID == "" {
		userID = "anonymous"
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied to the client
		logger.Warn("failed to upgrade connection", "error", err, "user_id", userID)
		return
	}

	client := h.hub.NewClient(conn, userID)
	h.hub.Register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump consumes client messages; dashboards only send pings.
func (h *Handler) readPump(client *Client) {
	logger := logging.From(client.ctx)

	defer func() {
		h.hub.Unregister(client)
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in readPump", "error", err)
		}
	}()

	client.conn.SetReadLimit(maxMessageSize)
	if err := client.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error("failed to set read deadline", "error", err)
		return
	}
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("unexpected WebSocket close", "error", err)
			}
			return
		}

		var msg websocket_model.ClientMessage
		if err := msg.FromBytes(data); err != nil {
			h.reply(client, websocket_model.NewErrorMessage("Invalid message format"))
			continue
		}

		switch msg.Type {
		case "ping":
			h.reply(client, websocket_model.NewPongMessage())
		default:
			h.reply(client, websocket_model.NewErrorMessage("Invalid message type"))
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (h *Handler) writePump(client *Client) {
	logger := logging.From(client.ctx)
	ticker := time.NewTicker(pingPeriod)

	client.mu.Lock()
	send := client.send
	client.mu.Unlock()

	defer func() {
		ticker.Stop()
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in writePump", "error", err)
		}
	}()

	if send == nil {
		return
	}

	for {
		select {
		case <-client.ctx.Done():
			return

		case message, ok := <-send:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// The hub closed the channel
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) reply(client *Client, msg *websocket_model.FeedMessage) {
	data, err := msg.ToBytes()
	if err != nil {
		return
	}
	client.trySend(data)
}
