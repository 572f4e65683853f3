package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/extractor"
)

// ClearCache returns a handler for DELETE /api/v1/cache.
func ClearCache(svc *extractor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.ClearCache()
		c.Status(http.StatusNoContent)
	}
}
