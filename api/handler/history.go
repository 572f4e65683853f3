package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/chat"
	"github.com/salesloop/pagelens/models"
)

// History returns a handler for GET /api/v1/conversation-history/:session_id.
func History(store *chat.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("session_id")

		sess, ok := store.Lookup(id)
		if !ok {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeNotFound,
					Message: "unknown session",
				},
			})
			return
		}

		snap := store.Snapshot(sess)
		history := make([]models.ChatExchange, len(snap.History))
		for i, ex := range snap.History {
			history[i] = models.ChatExchange{User: ex.User, Bot: ex.Bot}
		}

		c.JSON(http.StatusOK, models.ConversationHistoryResponse{
			SessionID: snap.ID,
			History:   history,
		})
	}
}
