package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// RespondError maps a platform error to its HTTP status and logs it. The
// response body only ever carries the message and error code, never the
// wrapped cause.
func RespondError(c *gin.Context, err error) {
	platformErr := platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "request failed")
	platformerrors.LogError(logger.GetLogger(), platformErr)

	status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	c.JSON(status, gin.H{
		"error": platformErr.Message,
		"code":  platformErr.UUID,
	})
}
