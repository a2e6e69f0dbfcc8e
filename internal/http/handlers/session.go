package handlers

import (
	"errors"
	"net/http"

	"rps_webapp/internal/game"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSessionRequest starts a new game session. Ruleset defaults to the
// server default and is fixed for the session's lifetime.
type CreateSessionRequest struct {
	Ruleset string `json:"ruleset"`
	BestOf  int    `json:"best_of"`
}

type CreateSessionResponse struct {
	Token string      `json:"token"`
	State game.State  `json:"state"`
	Moves []game.Move `json:"moves"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// empty body is fine: default ruleset, endless tally
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}
	if req.Ruleset == "" {
		req.Ruleset = h.DefaultRuleset
	}

	s, err := h.Registry.Create(req.Ruleset, req.BestOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := service.GenerateSessionToken(s.ID())
	if err != nil {
		h.Registry.Remove(s.ID())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, CreateSessionResponse{
		Token: token,
		State: s.State(),
		Moves: s.Ruleset().Moves(),
	})
}

// session resolves the authenticated session or writes the error response.
func (h *Handler) session(c *gin.Context) (*game.Session, bool) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return nil, false
	}

	s, err := h.Registry.Get(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			// valid token but the session was swept; client must start over
			c.JSON(http.StatusNotFound, gin.H{"error": "session expired"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return nil, false
	}
	return s, true
}

func (h *Handler) SessionState(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// ResetSession zeroes the scoreboard and starts a fresh match.
func (h *Handler) ResetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Reset()
	c.JSON(http.StatusOK, s.State())
}
