package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// PlayRateLimit limits round plays per session (not per IP) using Redis.
// Requires the JWT middleware to have set session_id in the context.
func PlayRateLimit(maxPlays int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			// Redis not configured, fail-open
			c.Next()
			return
		}

		sessionID, ok := SessionID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "play_rl:" + sessionID + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// On Redis error, fail-open but flag it
			c.Header("X-PlayRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-PlayRateLimit-Limit", strconv.Itoa(maxPlays))
		c.Header("X-PlayRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxPlays)-val), 10))

		if val > int64(maxPlays) {
			RLBlocked.WithLabelValues("play:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "play rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("play:" + c.FullPath()).Inc()
		c.Next()
	}
}
