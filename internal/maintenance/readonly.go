// Package maintenance holds switches operators flip while the store is being
// serviced, such as read-only mode during a database migration.
package maintenance

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReadOnlyMessage is returned to clients whose writes were rejected.
const ReadOnlyMessage = "store is in read-only mode"

// ContextKeyReadOnly stores the read-only flag in the request context.
const ContextKeyReadOnly = "read_only"

// ReadOnlyMiddleware blocks write operations under the API prefix.
// GET, HEAD and OPTIONS are always allowed, as is anything outside the prefix.
type ReadOnlyMiddleware struct {
	enabled bool
	prefix  string
}

// NewReadOnlyMiddleware creates a middleware guarding routes below /api/.
func NewReadOnlyMiddleware(enabled bool) *ReadOnlyMiddleware {
	return &ReadOnlyMiddleware{enabled: enabled, prefix: "/api/"}
}

// IsEnabled returns whether read-only mode is active.
func (m *ReadOnlyMiddleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *ReadOnlyMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) || !strings.HasPrefix(c.Request.URL.Path, m.prefix) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": ReadOnlyMessage,
			"code":  "read_only",
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
