package http

import (
	"errors"
	"net/http"

	"storefront-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const msgErrorOccurred = "Error occurred"

// writeError maps domain errors onto status codes. Anything unknown is a 500
// with a generic message; the cause is only logged.
func writeError(c *gin.Context, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrDuplicate):
		status, msg = http.StatusBadRequest, "Already exists"
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password"
	default:
		status, msg = http.StatusInternalServerError, msgErrorOccurred
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, MessageResponse{Message: msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
}
