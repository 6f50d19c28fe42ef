package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/audiobook-store/internal/audit"
)

const (
	// HeaderRequestID carries the request correlation id in both directions.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key holding the request id.
	ContextKeyRequestID = "request_id"

	maxRequestIDLength = 128
)

// RequestIDMiddleware reuses the caller's X-Request-ID or assigns a new UUID,
// and echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// requestMeta collects the request details recorded on audit events.
func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		RequestID: requestID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
