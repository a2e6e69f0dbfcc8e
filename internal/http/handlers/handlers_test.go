package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	registry := service.NewRegistry(time.Hour)
	h := NewHandler(registry, game.KeyRPS)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/rulesets", h.Rulesets)
	api.POST("/session", h.CreateSession)
	api.GET("/session", middleware.JWT(), h.SessionState)
	api.POST("/reset", middleware.JWT(), h.ResetSession)
	api.POST("/play", middleware.JWT(), h.Play)
	return r, registry
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type sessionResp struct {
	Token string     `json:"token"`
	State game.State `json:"state"`
	Moves []string   `json:"moves"`
}

func createSession(t *testing.T, r *gin.Engine, body any) sessionResp {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/v1/session", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create session: status %d, body %s", w.Code, w.Body.String())
	}
	var resp sessionResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	return resp
}

func TestCreateSessionDefaults(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := createSession(t, r, nil)
	if resp.State.Ruleset != "RPS" {
		t.Fatalf("ruleset = %s; want default RPS", resp.State.Ruleset)
	}
	if len(resp.Moves) != 3 {
		t.Fatalf("moves = %v; want 3 moves", resp.Moves)
	}
	if resp.Token == "" {
		t.Fatal("empty session token")
	}
}

func TestCreateSessionRPSLS(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := createSession(t, r, gin.H{"ruleset": "RPSLS", "best_of": 5})
	if resp.State.Ruleset != "RPSLS" || len(resp.Moves) != 5 {
		t.Fatalf("got %s with %d moves; want RPSLS with 5", resp.State.Ruleset, len(resp.Moves))
	}
	if resp.State.BestOf != 5 {
		t.Fatalf("best_of = %d; want 5", resp.State.BestOf)
	}
}

func TestCreateSessionBadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, "POST", "/api/v1/session", "", gin.H{"ruleset": "RPSSL"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown ruleset: status %d; want 400", w.Code)
	}
	if w := doJSON(t, r, "POST", "/api/v1/session", "", gin.H{"best_of": 4}); w.Code != http.StatusBadRequest {
		t.Fatalf("even best_of: status %d; want 400", w.Code)
	}
}

func TestPlayFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, nil)

	w := doJSON(t, r, "POST", "/api/v1/play", sess.Token, gin.H{"move": "rock"})
	if w.Code != http.StatusOK {
		t.Fatalf("play: status %d, body %s", w.Code, w.Body.String())
	}

	var resp PlayResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode play response: %v", err)
	}
	if resp.Outcome.PlayerMove != game.MoveRock {
		t.Fatalf("player_move = %s; want rock", resp.Outcome.PlayerMove)
	}
	rps, _ := game.ByKey("RPS")
	if !rps.Contains(resp.Outcome.OpponentMove) {
		t.Fatalf("opponent_move %q outside the move set", resp.Outcome.OpponentMove)
	}
	if resp.State.Score.Total() != 1 {
		t.Fatalf("score total = %d; want 1", resp.State.Score.Total())
	}
}

func TestPlayInvalidMoveLeavesScore(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, nil)

	// spock is not a classic RPS move
	if w := doJSON(t, r, "POST", "/api/v1/play", sess.Token, gin.H{"move": "spock"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid move: status %d; want 400", w.Code)
	}

	w := doJSON(t, r, "GET", "/api/v1/session", sess.Token, nil)
	var st game.State
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Score.Total() != 0 {
		t.Fatalf("score total = %d after rejected move; want 0", st.Score.Total())
	}
}

func TestResetZeroesScore(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r, nil)

	for i := 0; i < 3; i++ {
		if w := doJSON(t, r, "POST", "/api/v1/play", sess.Token, gin.H{"move": "paper"}); w.Code != http.StatusOK {
			t.Fatalf("play %d: status %d", i, w.Code)
		}
	}

	w := doJSON(t, r, "POST", "/api/v1/reset", sess.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: status %d", w.Code)
	}
	var st game.State
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Score.Total() != 0 {
		t.Fatalf("score total = %d after reset; want 0", st.Score.Total())
	}
}

func TestPlayRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, "POST", "/api/v1/play", "", gin.H{"move": "rock"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d; want 401", w.Code)
	}
	if w := doJSON(t, r, "POST", "/api/v1/play", "garbage", gin.H{"move": "rock"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d; want 401", w.Code)
	}
}

func TestPlayExpiredSession(t *testing.T) {
	r, registry := newTestRouter(t)
	sess := createSession(t, r, nil)

	registry.Remove(sess.State.ID)

	if w := doJSON(t, r, "POST", "/api/v1/play", sess.Token, gin.H{"move": "rock"}); w.Code != http.StatusNotFound {
		t.Fatalf("expired session: status %d; want 404", w.Code)
	}
}

func TestRulesetsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/v1/rulesets", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rulesets: status %d", w.Code)
	}

	var resp struct {
		Rulesets []struct {
			Key     string              `json:"key"`
			Moves   []string            `json:"moves"`
			Beats   map[string][]string `json:"beats"`
			Default bool                `json:"default"`
		} `json:"rulesets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode rulesets: %v", err)
	}
	if len(resp.Rulesets) != 2 {
		t.Fatalf("got %d rulesets; want 2", len(resp.Rulesets))
	}
	if !resp.Rulesets[0].Default || resp.Rulesets[0].Key != "RPS" {
		t.Fatalf("first ruleset = %+v; want RPS as default", resp.Rulesets[0])
	}
}
