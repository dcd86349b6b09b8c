package middleware

import (
	"gallery-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// Trace reuses the caller's X-Trace-ID or creates one, and threads it through
// the request context so every log line of the request carries it.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.TraceIDKey, id)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), id))
		c.Header(TraceHeader, id)
		c.Next()
	}
}
