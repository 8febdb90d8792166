package middleware

// identity.go exposes the caller identity stored by JWTAuth.  Anonymous
// requests yield empty strings; the rate limiter keys them as "anon".

import "github.com/labstack/echo/v4"

const (
    ctxNIC     = "nic"
    ctxSession = "sid"
)

// NIC returns the authenticated caller's NIC.
func NIC(c echo.Context) string {
    s, _ := c.Get(ctxNIC).(string)
    return s
}

// SessionID returns the session id carried by the caller's token.
func SessionID(c echo.Context) string {
    s, _ := c.Get(ctxSession).(string)
    return s
}

func currentUserID(c echo.Context) string {
    if nic := NIC(c); nic != "" {
        return nic
    }
    return "anon"
}
