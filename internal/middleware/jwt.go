package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/utils"
)

// SessionValidator confirms that a session is still open.
type SessionValidator interface {
    ValidateSession(ctx context.Context, sessionID string) (*model.Session, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and the server-side session it is bound to.  On success the token's NIC
// and session id are stored in the context under "nic" and "sid".  A
// revoked or expired session is rejected even when the token itself has not
// expired yet.
func JWTAuth(secret string, sessions SessionValidator) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearer(c)
            if !ok {
                return unauthorized(c, "missing bearer token")
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return unauthorized(c, "invalid token")
            }
            if _, err := sessions.ValidateSession(c.Request().Context(), claims.SessionID); err != nil {
                if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
                    return err
                }
                return unauthorized(c, "session expired, please log in again")
            }
            c.Set(ctxNIC, claims.NIC)
            c.Set(ctxSession, claims.SessionID)
            return next(c)
        }
    }
}

// bearer extracts the token from the Authorization header.
func bearer(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get(echo.HeaderAuthorization)
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    return raw, raw != ""
}

func unauthorized(c echo.Context, msg string) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": msg})
}
