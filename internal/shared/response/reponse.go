package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// JSON envelope, chỉ dùng cho /health
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// HTML renders a page template. Every page gets the signed-in user under "User".
func HTML(c *gin.Context, statusCode int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = CurrentUser(c)
	c.HTML(statusCode, name, data)
}

// Viewer is what templates know about the requester.
type Viewer struct {
	Authenticated bool
	ID            int64
	Email         string
	IsStaff       bool
}

func CurrentUser(c *gin.Context) Viewer {
	id := c.GetInt64(shared.CtxUserID)
	return Viewer{
		Authenticated: id > 0,
		ID:            id,
		Email:         c.GetString(shared.CtxUserEmail),
		IsStaff:       c.GetBool(shared.CtxIsStaff),
	}
}

// Redirect issues a 302, same as a browser form flow expects after POST.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// ErrorPage renders error.html and aborts the chain.
func ErrorPage(c *gin.Context, statusCode int, message string) {
	HTML(c, statusCode, "error.html", gin.H{
		"Title":   http.StatusText(statusCode),
		"Status":  statusCode,
		"Message": message,
	})
	c.Abort()
}

func Forbidden(c *gin.Context) {
	ErrorPage(c, http.StatusForbidden, "You do not have permission to access this page.")
}

func NotFound(c *gin.Context) {
	ErrorPage(c, http.StatusNotFound, "The requested page was not found.")
}

// InternalServerError logs err with the request id; the page never shows it.
func InternalServerError(c *gin.Context, err error) {
	logger.Error("request failed: "+c.Request.Method+" "+c.Request.URL.Path+" ["+c.GetString(shared.CtxRequestID)+"]", err)
	ErrorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
