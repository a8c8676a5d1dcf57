// Package controller holds the transport glue shared by the user and admin
// handler packages.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
)

// WriteError renders a service error. Domain kinds map to 4xx with their
// Indonesian message and kind string; capacity rejections and idempotency
// guards that carry structured details get them embedded in the body so the
// client can render current occupancy or the prior attempt without a second
// request. Store errors are logged with the underlying cause and surfaced
// opaque.
func WriteError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	kind := apperr.KindOf(err)

	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	details := apperr.DetailsOf(err)
	if details == nil {
		c.JSON(status, dto.ErrorResponse{Error: apperr.MessageOf(err), Kind: string(kind)})
		return
	}

	switch kind {
	case apperr.KindCapacityExceeded:
		// The details payload is the full capacity report, already shaped
		// as the response body.
		c.JSON(status, details)
	case apperr.KindAlreadyCompleted, apperr.KindAlreadySubmitted:
		c.JSON(status, gin.H{
			"error":   apperr.MessageOf(err),
			"kind":    string(kind),
			"attempt": details,
		})
	default:
		c.JSON(status, gin.H{
			"error":   apperr.MessageOf(err),
			"kind":    string(kind),
			"details": details,
		})
	}
}

// WriteBindError renders a request-binding failure as a validation error.
func WriteBindError(c *gin.Context, err error) {
	log.Warn().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("Failed to bind request body")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: string(apperr.KindValidation)})
}
