package handlers

import (
	"net/http"
	"os"

	"rps_webapp/internal/logger"
	"rps_webapp/internal/service"
	"rps_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection to a live play stream for one session.
func (h *Handler) WS(c *gin.Context) {
	// token from query: browsers cannot set headers on websocket dials
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	sessionID, err := service.ParseSessionToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	s, err := h.Registry.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session expired"})
		return
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade error", "err", err)
		return
	}

	client := ws.NewClient(s, conn)
	client.OnRound = func(ruleset, verdict string) {
		RoundsPlayed.WithLabelValues(ruleset, verdict).Inc()
	}

	go client.Run()
}
