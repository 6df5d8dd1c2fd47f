package shared

// Gin context keys set by the session and request-id middleware.
const (
	CtxRequestID = "request_id"
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxIsStaff   = "is_staff"
)
