package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/middleware"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// UserHandler serves /api/user.
type UserHandler struct {
    Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
    return &UserHandler{Users: users}
}

func (h *UserHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    us, err := h.Users.List(ctx)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Users retrieved successfully", us)
}

func (h *UserHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.Get(ctx, c.Param("nic"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User retrieved successfully", u)
}

func (h *UserHandler) ByType(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    us, err := h.Users.ByType(ctx, c.Param("type"))
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Users retrieved successfully", us)
}

func (h *UserHandler) Create(c echo.Context) error {
    var req validator.UserRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.Create(ctx, middleware.NIC(c), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusCreated, "User created successfully", u)
}

// Patch serves both PUT and PATCH; absent fields are left unchanged.
func (h *UserHandler) Patch(c echo.Context) error {
    var req validator.UserPatchRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.Patch(ctx, middleware.NIC(c), c.Param("nic"), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User updated successfully", u)
}

func (h *UserHandler) Delete(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Users.Delete(ctx, middleware.NIC(c), c.Param("nic")); err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User deleted successfully", nil)
}
