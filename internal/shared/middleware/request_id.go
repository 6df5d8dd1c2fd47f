package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

const RequestIDHeader = "X-Request-ID"

// RequestID gắn id cho mỗi request, tái sử dụng header từ proxy nếu có
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(shared.CtxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
