package middleware

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/response"
)

// Staff chỉ cho staff đi qua. User thường nhận trang 403, session giữ nguyên.
func Staff() Predicate {
	return Predicate{
		Name: "staff",
		Allow: func(c *gin.Context) bool {
			return c.GetBool(shared.CtxIsStaff)
		},
		Deny: func(c *gin.Context) {
			response.Forbidden(c)
		},
	}
}
