package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseID parses a positive BIGSERIAL id; anything else is reported as not ok.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SafeNext chỉ chấp nhận path nội bộ, tránh open redirect sau login
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}

// LoginURL builds the login redirect carrying the originally requested path.
func LoginURL(loginPath, next string) string {
	return loginPath + "?next=" + url.QueryEscape(next)
}
