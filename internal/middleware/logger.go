package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    logrus "github.com/sirupsen/logrus"
)

// RequestLogger writes one logrus entry per request with method, path,
// status and latency.  5xx responses log at error level, 4xx at warn.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }
            status := c.Response().Status
            entry := logrus.WithFields(logrus.Fields{
                "method":     c.Request().Method,
                "path":       c.Path(),
                "uri":        c.Request().RequestURI,
                "status":     status,
                "latency_ms": time.Since(start).Milliseconds(),
                "ip":         c.RealIP(),
                "nic":        NIC(c),
            })
            switch {
            case status >= 500:
                entry.WithError(err).Error("request")
            case status >= 400:
                entry.Warn("request")
            default:
                entry.Info("request")
            }
            return nil
        }
    }
}
