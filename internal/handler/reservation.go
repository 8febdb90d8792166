package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/middleware"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// ReservationHandler serves /api/reservation.
type ReservationHandler struct {
    Reservations *service.ReservationService
}

func NewReservationHandler(rs *service.ReservationService) *ReservationHandler {
    return &ReservationHandler{Reservations: rs}
}

func (h *ReservationHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    rs, err := h.Reservations.List(ctx)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservations retrieved successfully", rs)
}

func (h *ReservationHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    r, err := h.Reservations.Get(ctx, c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservation retrieved successfully", r)
}

func (h *ReservationHandler) ByNIC(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    rs, err := h.Reservations.ByNIC(ctx, c.Param("nic"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservations retrieved successfully", rs)
}

func (h *ReservationHandler) ByTrain(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    rs, err := h.Reservations.ByTrain(ctx, c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservations retrieved successfully", rs)
}

func (h *ReservationHandler) Create(c echo.Context) error {
    var req validator.ReservationRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    r, err := h.Reservations.Create(ctx, middleware.NIC(c), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusCreated, "Reservation created successfully", r)
}

func (h *ReservationHandler) Edit(c echo.Context) error {
    var req validator.ReservationRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    r, err := h.Reservations.Edit(ctx, middleware.NIC(c), c.Param("id"), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservation updated successfully", r)
}

func (h *ReservationHandler) Delete(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Reservations.Delete(ctx, middleware.NIC(c), c.Param("id")); err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Reservation deleted successfully", nil)
}
