package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/middleware"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// TrainHandler serves /api/train.  Reads are public; writes require a token.
type TrainHandler struct {
    Trains *service.TrainService
}

func NewTrainHandler(trains *service.TrainService) *TrainHandler {
    return &TrainHandler{Trains: trains}
}

func (h *TrainHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    ts, err := h.Trains.List(ctx)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Trains retrieved successfully", ts)
}

func (h *TrainHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Trains.Get(ctx, c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Train retrieved successfully", t)
}

func (h *TrainHandler) ByOwner(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    ts, err := h.Trains.ByOwner(ctx, c.Param("nic"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Trains retrieved successfully", ts)
}

func (h *TrainHandler) Create(c echo.Context) error {
    var req validator.TrainRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Trains.Create(ctx, middleware.NIC(c), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusCreated, "Train created successfully", t)
}

func (h *TrainHandler) Update(c echo.Context) error {
    var req validator.TrainRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    t, err := h.Trains.Update(ctx, middleware.NIC(c), c.Param("id"), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Train updated successfully", t)
}

func (h *TrainHandler) Delete(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Trains.Delete(ctx, middleware.NIC(c), c.Param("id")); err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Train deleted successfully", nil)
}
