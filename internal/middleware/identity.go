package middleware

// identity.go defines the context keys written by TokenAuth and the helpers
// handlers use to read them back.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID    = "user_id"
	ctxUsername  = "username"
	ctxAuthToken = "auth_token"
	ctxParamID   = "param_id"
)

// UserID returns the authenticated user's id.  ok is false on public
// routes.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// Username returns the authenticated user's name, or "".
func Username(c echo.Context) string {
	s, _ := c.Get(ctxUsername).(string)
	return s
}

// AuthToken returns the raw token the request authenticated with, or "".
func AuthToken(c echo.Context) string {
	s, _ := c.Get(ctxAuthToken).(string)
	return s
}

// currentUserID identifies the caller for rate limiting; anonymous callers
// share the "anon" bucket component.
func currentUserID(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
