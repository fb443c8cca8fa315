package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request id generation
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key of the request id
const RequestIDKey = "requestID"

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Honour an upstream id
		if id == "" || len(id) > 64 {
			id = uuid.NewString() // Generate a fresh id
		}
		c.Set(RequestIDKey, id)                    // Store in context for logging
		c.Writer.Header().Set(RequestIDHeader, id) // Return to the client
		c.Next()
	}
}
