package handler // package handler holds the Echo handlers of the HTTP API

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    logrus "github.com/sirupsen/logrus"

    "github.com/iliyamo/train-ticket-reservation/internal/service"
)

// envelope is the shape of every JSON response body.  Data is omitted on
// failures.
type envelope struct {
    Success bool   `json:"success"`
    Message string `json:"message"`
    Data    any    `json:"data,omitempty"`
}

// storeTimeout bounds the store work of one request.
const storeTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), storeTimeout)
}

func respond(c echo.Context, status int, msg string, data any) error {
    return c.JSON(status, envelope{Success: true, Message: msg, Data: data})
}

func reject(c echo.Context, status int, msg string) error {
    return c.JSON(status, envelope{Success: false, Message: msg})
}

func badBody(c echo.Context) error {
    return reject(c, http.StatusBadRequest, "invalid request body")
}

// statusOf maps a service error to its HTTP status.
func statusOf(err error) int {
    var ve *service.ValidationError
    switch {
    case errors.As(err, &ve):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrInsufficientCapacity):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrSessionExpired):
        return http.StatusUnauthorized
    case errors.Is(err, service.ErrForbidden):
        return http.StatusForbidden
    case errors.Is(err, service.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, service.ErrConflict):
        return http.StatusConflict
    case errors.Is(err, context.DeadlineExceeded):
        return http.StatusGatewayTimeout
    }
    return http.StatusInternalServerError
}

// fail writes the failure envelope for err.  Store faults are logged and
// reported without detail.
func fail(c echo.Context, err error) error {
    status := statusOf(err)
    msg := err.Error()
    if status >= http.StatusInternalServerError {
        logrus.WithError(err).WithFields(logrus.Fields{
            "method": c.Request().Method,
            "path":   c.Path(),
        }).Error("request failed")
        msg = http.StatusText(status)
    }
    return reject(c, status, msg)
}
