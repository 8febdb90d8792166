package handler

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/service"
)

func TestStatusOf(t *testing.T) {
    cases := []struct {
        err  error
        want int
    }{
        {&service.ValidationError{Messages: []string{"NIC is required."}}, http.StatusBadRequest},
        {fmt.Errorf("create: %w", service.ErrInsufficientCapacity), http.StatusBadRequest},
        {service.ErrUnauthorized, http.StatusUnauthorized},
        {service.ErrSessionExpired, http.StatusUnauthorized},
        {service.ErrForbidden, http.StatusForbidden},
        {service.ErrNotFound, http.StatusNotFound},
        {service.ErrConflict, http.StatusConflict},
        {context.DeadlineExceeded, http.StatusGatewayTimeout},
        {errors.New("disk on fire"), http.StatusInternalServerError},
    }
    for _, c := range cases {
        if got := statusOf(c.err); got != c.want {
            t.Errorf("statusOf(%v) = %d, want %d", c.err, got, c.want)
        }
    }
}

func TestFailHidesStoreFaults(t *testing.T) {
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
    if err := fail(c, errors.New("dial tcp 10.0.0.5:3306: refused")); err != nil {
        t.Fatal(err)
    }
    var env map[string]any
    _ = json.Unmarshal(rec.Body.Bytes(), &env)
    if rec.Code != http.StatusInternalServerError || env["success"] != false || env["message"] != "Internal Server Error" {
        t.Fatalf("response = %d %v", rec.Code, env)
    }
    if _, ok := env["data"]; ok {
        t.Fatal("failure envelope must not carry data")
    }
}

func TestRespondEnvelope(t *testing.T) {
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/districts", nil), rec)
    if err := Districts(c); err != nil {
        t.Fatal(err)
    }
    var env struct {
        Success bool     `json:"success"`
        Message string   `json:"message"`
        Data    []string `json:"data"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
        t.Fatal(err)
    }
    if !env.Success || len(env.Data) != 25 || env.Data[19] != "Nuwara Eliya" {
        t.Fatalf("envelope = %+v", env)
    }
}
