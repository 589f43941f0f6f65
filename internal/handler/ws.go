package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"carpool/internal/middleware"
	"carpool/internal/relay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; auth happens via the
	// bearer token, not the origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated clients to a websocket session for
// booking notifications.
type WSHandler struct {
	registry *relay.Registry
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(registry *relay.Registry) *WSHandler {
	return &WSHandler{registry: registry}
}

// Connect handles GET /v1/ws
func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.UserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for user %s: %v", userID, err)
		return
	}

	h.registry.Add(userID, conn)
	defer func() {
		h.registry.Remove(userID, conn)
		_ = conn.Close()
	}()

	// Clients only receive; the read loop exists to observe close frames
	// and pings, and to detect a dropped connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
