package handlers

import (
	"net/http"

	"rps_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

// Rulesets returns the available rulesets with their move sets and
// beats-tables so the frontend can render buttons and rules.
func (h *Handler) Rulesets(c *gin.Context) {
	out := make([]gin.H, 0, len(game.Keys()))
	for _, key := range game.Keys() {
		rs, err := game.ByKey(key)
		if err != nil {
			continue
		}
		out = append(out, gin.H{
			"key":     key,
			"moves":   rs.Moves(),
			"beats":   rs.Beats(),
			"default": key == h.DefaultRuleset,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rulesets": out})
}
