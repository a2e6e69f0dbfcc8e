package ws

import (
	"encoding/json"
	"errors"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Envelope is the client -> server frame.
type Envelope struct {
	Type string `json:"type"`
	Move string `json:"move,omitempty"`
}

// Client streams one session's rounds over a websocket: the browser sends
// move/reset frames, the server answers with outcome and state frames.
// There is no matchmaking; the opponent is the server's random draw.
type Client struct {
	session *game.Session
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}

	// OnRound is called after each resolved round (metrics hook).
	OnRound func(ruleset, verdict string)
}

func NewClient(session *game.Session, conn *websocket.Conn) *Client {
	return &Client{
		session: session,
		conn:    conn,
		send:    make(chan []byte, 16),
		done:    make(chan struct{}),
	}
}

// Run starts the write pump and reads frames until the connection drops.
func (c *Client) Run() {
	go c.writePump()

	c.queue(map[string]any{
		"type":  "ready",
		"state": c.session.State(),
		"moves": c.session.Ruleset().Moves(),
	})

	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "session_id", c.session.ID(), "err", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendError("malformed frame")
			continue
		}

		switch env.Type {
		case "move":
			c.handleMove(env.Move)
		case "reset":
			c.session.Reset()
			c.queue(map[string]any{"type": "state", "state": c.session.State()})
		default:
			c.sendError("unknown frame type: " + env.Type)
		}
	}
}

func (c *Client) handleMove(raw string) {
	move, err := c.session.Ruleset().ParseMove(raw)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	outcome, err := c.session.Resolve(move)
	if err != nil {
		if errors.Is(err, game.ErrMatchOver) {
			c.sendError("match is over, reset to play again")
			return
		}
		c.sendError(err.Error())
		return
	}

	if c.OnRound != nil {
		c.OnRound(c.session.Ruleset().Key(), outcome.Verdict.String())
	}

	c.queue(map[string]any{
		"type":    "outcome",
		"outcome": outcome,
		"state":   c.session.State(),
	})
}

func (c *Client) sendError(msg string) {
	c.queue(map[string]any{"type": "error", "error": msg})
}

func (c *Client) queue(frame map[string]any) {
	raw, err := json.Marshal(frame)
	if err != nil {
		logger.Error("ws marshal error", "err", err)
		return
	}
	select {
	case c.send <- raw:
	case <-c.done:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
