package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/extractor"
	"github.com/salesloop/pagelens/models"
)

// Extract returns a handler serving both GET (query params) and POST
// (JSON body) on /api/v1/extract.
//
// The extraction pipeline is total: the only client error is invalid
// input; fetch failures come back as the default record, never as an
// error status.
func Extract(svc *extractor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExtractRequest
		var bindErr error
		if c.Request.Method == http.MethodGet {
			bindErr = c.ShouldBindQuery(&req)
		} else {
			bindErr = c.ShouldBindJSON(&req)
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: bindErr.Error(),
				},
			})
			return
		}

		method, err := models.ParseMethod(req.Method)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		rec, err := svc.Extract(c.Request.Context(), req.URL, method)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, rec)
	}
}

// respondError maps internal errors to HTTP statuses. Anything that is
// not a typed ExtractError is an internal error.
func respondError(c *gin.Context, err error) {
	var exErr *models.ExtractError
	if errors.As(err, &exErr) {
		status := http.StatusInternalServerError
		if exErr.Code == models.ErrCodeInvalidInput {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{Success: false, Error: exErr.ToDetail()})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInternal,
			Message: err.Error(),
		},
	})
}
