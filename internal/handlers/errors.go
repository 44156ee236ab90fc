package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

// writeError maps service errors to HTTP status codes.
func writeError(c *gin.Context, logger string, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		status = http.StatusNotFound
	case srvErrors.IsValidationError(err), errors.Is(err, funnel.ErrInvalidArgument):
		status = http.StatusBadRequest
	case srvErrors.IsInvalidStateError(err):
		status = http.StatusConflict
	case errors.Is(err, funnel.ErrQueueFull):
		status = http.StatusTooManyRequests
	case errors.Is(err, funnel.ErrClosed):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		zap.S().Named(logger).Errorw(msg, "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
