package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"

	// ContextKeyRequestID is the gin context key the request id is stored
	// under, shared with the logging and tracing middlewares.
	ContextKeyRequestID = "request_id"
)

// RequestID ensures every request carries an X-Request-Id, generating one
// when the caller did not send it, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, id)
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(ContextKeyRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id stored by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
