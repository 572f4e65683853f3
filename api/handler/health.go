package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/extractor"
	"github.com/salesloop/pagelens/models"
)

// Health returns a handler for GET /api/v1/health.
func Health(svc *extractor.Service, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       "healthy",
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			CacheEntries: svc.CacheLen(),
			Version:      "0.1.0",
		})
	}
}
