package ws

import (
	"net/http"

	"treinai_backend/internal/logger"
	"treinai_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API is token-gated; origin is not the trust boundary here.
		return true
	},
}

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// ServeWS upgrades an authenticated request. The subscriber identity
// comes from the auth middleware, never from the query string.
func (h *Handler) ServeWS(c *gin.Context) {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed")
		return
	}

	client := &Client{
		ID:      userID.(string),
		Conn:    conn,
		Send:    make(chan Event, 256),
		manager: h.manager,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}
