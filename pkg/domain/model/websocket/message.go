package websocket

import (
	"encoding/json"
	"time"

	"github.com/secmon-lab/sentiq/pkg/domain/event"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
)

// ClientMessage is sent from a dashboard to the server
type ClientMessage struct {
	Type      string `json:"type"` // "ping"
	Timestamp int64  `json:"timestamp"`
}

func (m *ClientMessage) FromBytes(data []byte) error {
	return json.Unmarshal(data, m)
}

// FeedMessage is pushed from the server to every connected dashboard
type FeedMessage struct {
	Type      string       `json:"type"` // "created", "updated", "cleared", "status", "pong", "error"
	Action    string       `json:"action,omitempty"`
	Alert     *alert.Alert `json:"alert,omitempty"`
	Count     int          `json:"count,omitempty"`
	Content   string       `json:"content,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

func (r *FeedMessage) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

func newFeedMessage(msgType string) *FeedMessage {
	return &FeedMessage{
		Type:      msgType,
		Timestamp: time.Now().Unix(),
	}
}

func NewStatusMessage(content string) *FeedMessage {
	msg := newFeedMessage("status")
	msg.Content = content
	return msg
}

func NewPongMessage() *FeedMessage {
	return newFeedMessage("pong")
}

func NewErrorMessage(content string) *FeedMessage {
	msg := newFeedMessage("error")
	msg.Content = content
	return msg
}

// NewEventMessage converts an alert event into its feed representation. It
// returns nil for unknown events.
func NewEventMessage(ev event.AlertEvent) *FeedMessage {
	switch e := ev.(type) {
	case *event.AlertCreatedEvent:
		msg := newFeedMessage("created")
		msg.Alert = e.Alert
		return msg
	case *event.AlertUpdatedEvent:
		msg := newFeedMessage("updated")
		msg.Action = e.Action.String()
		msg.Alert = e.Alert
		return msg
	case *event.AlertsClearedEvent:
		msg := newFeedMessage("cleared")
		msg.Count = e.Count
		return msg
	}
	return nil
}
