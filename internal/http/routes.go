package http

import (
	"rps_webapp/internal/config"
	"rps_webapp/internal/http/handlers"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, registry *service.Registry, cfg *config.Config, version string) {
	h := handlers.NewHandler(registry, cfg.DefaultRuleset)
	healthHandler := handlers.NewHealthHandler(registry, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// WebSocket play stream
	r.GET("/ws", h.WS)

	// Frontend static files
	r.StaticFS("/assets", gin.Dir("./web", false))
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Ruleset catalogue for the frontend
	api.GET("/rulesets", h.Rulesets)

	// Session lifecycle
	api.POST("/session", h.CreateSession)
	api.GET("/session", middleware.JWT(), h.SessionState)
	api.POST("/reset", middleware.JWT(), h.ResetSession)

	// Round resolution, rate limited per session
	playRL := middleware.PlayRateLimit(cfg.PlayRateLimit, cfg.PlayRateWindow)
	api.POST("/play", middleware.JWT(), playRL, h.Play)
}
