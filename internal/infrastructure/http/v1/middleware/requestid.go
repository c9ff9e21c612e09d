package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturis/pkg/logger"
)

// HeaderRequestID carries the request ID for log correlation.
const HeaderRequestID = "X-Request-ID"

// RequestID middleware extracts or generates a request ID and stores a
// logger enriched with it in the request context, so every log line for
// the request carries the ID.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.WithLogger(c.Request.Context(), log.With("request_id", requestID))
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("request_id", requestID)

		// Echo back to the caller
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
