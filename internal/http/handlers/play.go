package handlers

import (
	"errors"
	"net/http"

	"rps_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

type PlayRequest struct {
	Move string `json:"move" binding:"required"`
}

type PlayResponse struct {
	Outcome game.Outcome `json:"outcome"`
	State   game.State   `json:"state"`
}

// Play resolves one round against the random opponent.
func (h *Handler) Play(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	move, err := s.Ruleset().ParseMove(req.Move)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := s.Resolve(move)
	if err != nil {
		if errors.Is(err, game.ErrMatchOver) {
			c.JSON(http.StatusConflict, gin.H{"error": "match is over, reset to play again"})
			return
		}
		if errors.Is(err, game.ErrInvalidMove) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "game error"})
		return
	}

	RoundsPlayed.WithLabelValues(s.Ruleset().Key(), outcome.Verdict.String()).Inc()

	c.JSON(http.StatusOK, PlayResponse{
		Outcome: outcome,
		State:   s.State(),
	})
}
