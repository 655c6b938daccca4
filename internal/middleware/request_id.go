package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
)

const maxRequestIDLen = 128

// RequestID tags the request and the backend calls made on its behalf. A
// caller-supplied id is kept when it looks sane.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(gateway.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(gateway.RequestIDHeader, id)
		c.Writer.Header().Set(gateway.RequestIDHeader, id)
		c.Request = c.Request.WithContext(gateway.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(gateway.RequestIDHeader)
}
