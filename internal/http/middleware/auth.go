package middleware

import (
	"net/http"
	"strings"

	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates the session token from the Authorization header and
// stores the session_id in the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sessionID, err := service.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// SessionID extracts the authenticated session ID from the gin context.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get("session_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
