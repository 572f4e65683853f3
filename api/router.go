package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/api/handler"
	"github.com/salesloop/pagelens/api/middleware"
	"github.com/salesloop/pagelens/chat"
	"github.com/salesloop/pagelens/config"
	"github.com/salesloop/pagelens/extractor"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes
// always work.
func NewRouter(svc *extractor.Service, store *chat.Store, responder *chat.SalesResponder, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(svc, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Extraction — GET for quick integration, POST for JSON clients.
	protected.GET("/extract", handler.Extract(svc))
	protected.POST("/extract", handler.Extract(svc))

	// Conversational endpoint grounded on extracted pages.
	protected.POST("/chat", handler.Chat(store, responder, svc))
	protected.GET("/conversation-history/:session_id", handler.History(store))

	// Cache administration.
	protected.DELETE("/cache", handler.ClearCache(svc))

	return r
}
