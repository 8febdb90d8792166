package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
)

// DashboardHandler serves the back office counters.
type DashboardHandler struct {
    Dashboard *service.DashboardService
}

func NewDashboardHandler(d *service.DashboardService) *DashboardHandler {
    return &DashboardHandler{Dashboard: d}
}

func (h *DashboardHandler) Counts(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    out, err := h.Dashboard.Counts(ctx)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Dashboard data retrieved successfully", out)
}

// Districts lists the station gazetteer.
func Districts(c echo.Context) error {
    return respond(c, http.StatusOK, "Districts retrieved successfully", model.DistrictNames())
}
