package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/chat"
	"github.com/salesloop/pagelens/extractor"
	"github.com/salesloop/pagelens/models"
)

// Chat returns a handler for POST /api/v1/chat.
//
// When the request carries a URL, the page is extracted (cache applies)
// and the record grounds the conversation for this and later messages
// in the session.
func Chat(store *chat.Store, responder *chat.SalesResponder, svc *extractor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		sess := store.Session(req.SessionID)

		if req.URL != "" {
			rec, err := svc.Extract(c.Request.Context(), req.URL, models.MethodAuto)
			if err != nil {
				respondError(c, err)
				return
			}
			store.SetRecord(sess, rec)
		}

		snap := store.Snapshot(sess)
		reply := responder.Respond(c.Request.Context(), snap, req.Message)
		store.Append(sess, req.Message, reply)

		c.JSON(http.StatusOK, models.ChatResponse{
			Response:  reply,
			SessionID: snap.ID,
			Record:    snap.Record,
		})
	}
}
