package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

var (
	ErrMatchOver     = errors.New("match is over")
	ErrInvalidBestOf = errors.New("best_of must be a positive odd number")
)

// MoveSource draws the opponent's move. The production source is uniform
// crypto/rand; tests substitute a deterministic stub.
type MoveSource interface {
	Draw(moves []Move) Move
}

// CryptoSource draws uniformly using crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Draw(moves []Move) Move {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(moves))))
	if err != nil {
		// Fallback - should never happen
		n = big.NewInt(0)
	}
	return moves[n.Int64()]
}

// ScoreBoard holds the running tally for one session.
type ScoreBoard struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Ties   int64 `json:"ties"`
}

// Total is the number of resolved rounds since the last reset.
func (sb ScoreBoard) Total() int64 {
	return sb.Wins + sb.Losses + sb.Ties
}

func (sb *ScoreBoard) apply(v Verdict) {
	switch v {
	case VerdictWin:
		sb.Wins++
	case VerdictLose:
		sb.Losses++
	default:
		sb.Ties++
	}
}

// State is a snapshot of a session for serialization to clients.
type State struct {
	ID          string     `json:"id"`
	Ruleset     string     `json:"ruleset"`
	Score       ScoreBoard `json:"score"`
	BestOf      int        `json:"best_of,omitempty"`
	MatchOver   bool       `json:"match_over"`
	MatchWinner string     `json:"match_winner,omitempty"`
}

// Session owns one ruleset, one scoreboard and the opponent move source.
// BestOf 0 means endless play; an odd BestOf ends the match once either
// side reaches the majority, like a best-of-three.
type Session struct {
	id      string
	ruleset *Ruleset
	bestOf  int
	src     MoveSource

	mu       sync.Mutex
	score    ScoreBoard
	lastSeen time.Time
}

func NewSession(id string, ruleset *Ruleset, bestOf int, src MoveSource) (*Session, error) {
	if bestOf < 0 || (bestOf > 0 && bestOf%2 == 0) {
		return nil, ErrInvalidBestOf
	}
	if src == nil {
		src = CryptoSource{}
	}
	return &Session{
		id:       id,
		ruleset:  ruleset,
		bestOf:   bestOf,
		src:      src,
		lastSeen: time.Now(),
	}, nil
}

func (s *Session) ID() string        { return s.id }
func (s *Session) Ruleset() *Ruleset { return s.ruleset }

// Resolve plays one round: validates the player's move, draws the opponent's
// move, looks up the verdict and bumps exactly one counter. The scoreboard is
// untouched when the move is rejected.
func (s *Session) Resolve(playerMove Move) (Outcome, error) {
	if !s.ruleset.Contains(playerMove) {
		return Outcome{}, ErrInvalidMove
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()

	if s.matchOverLocked() {
		return Outcome{}, ErrMatchOver
	}

	opponent := s.src.Draw(s.ruleset.moves)
	verdict := s.ruleset.Decide(playerMove, opponent)
	s.score.apply(verdict)

	return Outcome{
		PlayerMove:   playerMove,
		OpponentMove: opponent,
		Verdict:      verdict,
	}, nil
}

// Reset zeroes the scoreboard and starts a fresh match. Idempotent.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = ScoreBoard{}
	s.lastSeen = time.Now()
}

// State returns a consistent snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:        s.id,
		Ruleset:   s.ruleset.key,
		Score:     s.score,
		BestOf:    s.bestOf,
		MatchOver: s.matchOverLocked(),
	}
	if st.MatchOver {
		if s.score.Wins > s.score.Losses {
			st.MatchWinner = "player"
		} else {
			st.MatchWinner = "opponent"
		}
	}
	return st
}

func (s *Session) matchOverLocked() bool {
	if s.bestOf == 0 {
		return false
	}
	needed := int64(s.bestOf/2 + 1)
	return s.score.Wins >= needed || s.score.Losses >= needed
}

// Idle reports how long the session has gone without activity.
func (s *Session) Idle() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen)
}
