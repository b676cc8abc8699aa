package websocket_test

import (
	"net/http"

	ws_controller "github.com/secmon-lab/sentiq/pkg/controller/websocket"
)

func httpHandler(h *ws_controller.Handler) http.Handler {
	return http.HandlerFunc(h.HandleAlertFeed)
}
