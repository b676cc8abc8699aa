package websocket_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"
	ws_controller "github.com/secmon-lab/sentiq/pkg/controller/websocket"
	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	websocket_model "github.com/secmon-lab/sentiq/pkg/domain/model/websocket"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

func setupFeed(t *testing.T) (*ws_controller.Hub, string) {
	t.Helper()
	hub := ws_controller.NewHub(t.Context())
	go hub.Run()
	t.Cleanup(func() { _ = hub.Close() })

	srv := httptest.NewServer(httpHandler(ws_controller.NewHandler(hub)))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) websocket_model.FeedMessage {
	t.Helper()
	gt.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	gt.NoError(t, err).Required()

	var msg websocket_model.FeedMessage
	gt.NoError(t, json.Unmarshal(data, &msg)).Required()
	return msg
}

func waitClients(t *testing.T, hub *ws_controller.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAlertFeed(t *testing.T) {
	hub, url := setupFeed(t)

	conn1 := dial(t, url)
	conn2 := dial(t, url)
	gt.Equal(t, readMessage(t, conn1).Type, "status")
	gt.Equal(t, readMessage(t, conn2).Type, "status")
	waitClients(t, hub, 2)

	a := &alert.Alert{
		ID:       "alert-1740823200000-abcdef012",
		Origin:   types.OriginLocal,
		DriverID: "7",
		Severity: types.SeverityCritical,
		Status:   types.AlertStatusActive,
	}
	hub.Publish(t.Context(), &event.AlertCreatedEvent{Alert: a})

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		msg := readMessage(t, conn)
		gt.Equal(t, msg.Type, "created")
		gt.NotNil(t, msg.Alert)
		gt.Equal(t, msg.Alert.ID, a.ID)
	}

	hub.Publish(t.Context(), &event.AlertUpdatedEvent{Action: alert.ActionAcknowledge, Alert: a})
	msg := readMessage(t, conn1)
	gt.Equal(t, msg.Type, "updated")
	gt.Equal(t, msg.Action, "acknowledge")

	hub.Publish(t.Context(), &event.AlertsClearedEvent{Count: 3})
	msg = readMessage(t, conn1)
	gt.Equal(t, msg.Type, "cleared")
	gt.Equal(t, msg.Count, 3)
}

func TestAlertFeedPing(t *testing.T) {
	_, url := setupFeed(t)
	conn := dial(t, url)
	gt.Equal(t, readMessage(t, conn).Type, "status")

	gt.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	gt.Equal(t, readMessage(t, conn).Type, "pong")

	gt.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"subscribe"}`)))
	msg := readMessage(t, conn)
	gt.Equal(t, msg.Type, "error")

	gt.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	gt.Equal(t, readMessage(t, conn).Type, "error")
}

func TestAlertFeedDisconnect(t *testing.T) {
	hub, url := setupFeed(t)
	conn := dial(t, url)
	gt.Equal(t, readMessage(t, conn).Type, "status")
	waitClients(t, hub, 1)

	gt.NoError(t, conn.Close())
	waitClients(t, hub, 0)

	// Publishing without clients is a no-op
	hub.Publish(t.Context(), &event.AlertsClearedEvent{Count: 1})
}
