package service

import (
	"errors"
	"sync"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry keeps all live game sessions in memory. Nothing is persisted:
// sessions exist for the process lifetime and abandoned ones are swept
// after the TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	ttl      time.Duration
}

// NewRegistry creates a registry and starts the cleanup goroutine.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*game.Session),
		ttl:      ttl,
	}
	go r.cleanupLoop()
	return r
}

// Create starts a new session with the given ruleset key and optional
// best-of-N match length (0 = endless tally).
func (r *Registry) Create(rulesetKey string, bestOf int) (*game.Session, error) {
	ruleset, err := game.ByKey(rulesetKey)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	s, err := game.NewSession(id, ruleset, bestOf, game.CryptoSource{})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	logger.Info("session created", "session_id", id, "ruleset", ruleset.Key(), "best_of", bestOf)
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*game.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		r.sweep()
	}
}

func (r *Registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.Idle() > r.ttl {
			delete(r.sessions, id)
			logger.Debug("session expired", "session_id", id)
		}
	}
}
