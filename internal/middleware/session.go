package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionHeader carries the caller's view session across requests.
const SessionHeader = "X-Session-ID"

// SessionKey is the echo context key holding the resolved session id.
const SessionKey = "session_id"

// SessionMiddleware resolves the session id for the request, minting a
// fresh one when the caller did not send the header. The id is always
// echoed back so the client can carry it forward.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := c.Request().Header.Get(SessionHeader)
		if session == "" {
			session = uuid.New().String()
		}
		c.Set(SessionKey, session)
		c.Response().Header().Set(SessionHeader, session)
		return next(c)
	}
}

// SessionID returns the session id resolved by SessionMiddleware.
func SessionID(c echo.Context) string {
	if s, ok := c.Get(SessionKey).(string); ok {
		return s
	}
	return ""
}
