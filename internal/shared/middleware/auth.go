package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usermodel "library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"
)

// SessionValidator is satisfied by *jwt.Manager.
type SessionValidator interface {
	ValidateSessionToken(token string) (*jwt.Claims, error)
}

// UserLoader is satisfied by the user service.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*usermodel.User, error)
}

// Session đọc cookie session rồi load user từ database ở mỗi request,
// nên quyền staff và trạng thái active luôn là giá trị hiện tại.
// Cookie hỏng, hết hạn, user bị xóa hoặc inactive: cookie bị xóa, request là anonymous.
func Session(tokens SessionValidator, users UserLoader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateSessionToken(raw)
		if err != nil {
			clearSession(c, cookieName)
			c.Next()
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		switch {
		case errors.Is(err, usermodel.ErrUserNotFound):
			clearSession(c, cookieName)
			c.Next()
			return
		case err != nil:
			// database lỗi: phục vụ như anonymous, giữ cookie cho request sau
			logger.Warn("session user lookup failed", map[string]interface{}{
				"user_id": claims.UserID,
				"error":   err.Error(),
			})
			c.Next()
			return
		case !u.IsActive:
			clearSession(c, cookieName)
			c.Next()
			return
		}

		c.Set(shared.CtxUserID, u.ID)
		c.Set(shared.CtxUserEmail, u.Email)
		c.Set(shared.CtxIsStaff, u.IsStaff)
		c.Next()
	}
}

func clearSession(c *gin.Context, cookieName string) {
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}

// CurrentUserID returns the session user, ok=false for anonymous requests.
func CurrentUserID(c *gin.Context) (int64, bool) {
	id := c.GetInt64(shared.CtxUserID)
	return id, id > 0
}

// Predicate is one access rule. Deny runs when Allow returns false.
type Predicate struct {
	Name  string
	Allow func(c *gin.Context) bool
	Deny  gin.HandlerFunc
}

// Authenticated sends anonymous users to the login page with ?next=<path>.
func Authenticated(loginPath string) Predicate {
	return Predicate{
		Name: "authenticated",
		Allow: func(c *gin.Context) bool {
			_, ok := CurrentUserID(c)
			return ok
		},
		Deny: func(c *gin.Context) {
			c.Redirect(http.StatusFound, utils.LoginURL(loginPath, c.Request.URL.RequestURI()))
			c.Abort()
		},
	}
}

// Require checks predicates in order; the first failing one handles the response.
func Require(preds ...Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range preds {
			if !p.Allow(c) {
				p.Deny(c)
				if !c.IsAborted() {
					c.Abort()
				}
				return
			}
		}
		c.Next()
	}
}
