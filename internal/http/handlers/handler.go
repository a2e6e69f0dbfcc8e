package handlers

import (
	"rps_webapp/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	Registry       *service.Registry
	DefaultRuleset string
}

func NewHandler(registry *service.Registry, defaultRuleset string) *Handler {
	return &Handler{
		Registry:       registry,
		DefaultRuleset: defaultRuleset,
	}
}

// RoundsPlayed counts resolved rounds by ruleset and verdict.
var RoundsPlayed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rounds_played_total",
		Help: "Total rounds resolved, labelled by ruleset and verdict",
	},
	[]string{"ruleset", "verdict"},
)

func init() {
	prometheus.MustRegister(RoundsPlayed)
}

// getSessionID extracts the authenticated session ID from the gin context.
func getSessionID(c interface{ Get(string) (any, bool) }) (string, bool) {
	v, ok := c.Get("session_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
