package websocket

import (
	"net/http"

	"workhub-service/internal/middleware"
	ws "workhub-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// ClientCount reports the number of open realtime connections.
func (h *WebSocketHandler) ClientCount() int {
	return h.hub.TotalClients()
}

// HandleConnection upgrades an authenticated request to a websocket and
// attaches it to the presence hub. Runs behind Auth(), which accepts the
// token from the query string for upgrade requests.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	id := middleware.MustGetIdentity(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, id.ID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
