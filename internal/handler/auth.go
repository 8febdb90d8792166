package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/middleware"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
    "github.com/iliyamo/train-ticket-reservation/internal/utils"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
    Auth      *service.AuthService
    JWTSecret string
}

func NewAuthHandler(auth *service.AuthService, secret string) *AuthHandler {
    return &AuthHandler{Auth: auth, JWTSecret: secret}
}

// Register: POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
    var req validator.CredentialsRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    l, err := h.Auth.Register(ctx, req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusCreated, "User registered successfully", l)
}

// Login: POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
    var req validator.CredentialsRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Auth.Login(ctx, req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User logged in successfully", res)
}

// TokenLogin: POST /api/auth/token-login.  The NIC comes from the body or,
// when the body has none, from a bearer token.  The reply only reports the
// remaining session time; access tokens come from Login.
func (h *AuthHandler) TokenLogin(c echo.Context) error {
    var req validator.TokenLoginRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    nic := strings.TrimSpace(req.NIC)
    if nic == "" {
        if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
            if claims, err := utils.ParseAccessToken(h.JWTSecret, strings.TrimPrefix(auth, "Bearer ")); err == nil {
                nic = claims.NIC
            }
        }
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Auth.TokenLogin(ctx, nic)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "Session valid for "+res.Remaining, res)
}

// Logout: POST /api/auth/logout (JWT)
func (h *AuthHandler) Logout(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Auth.Logout(ctx, middleware.SessionID(c)); err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User logged out successfully", nil)
}

// Activate: POST /api/auth/activate (JWT, admin)
func (h *AuthHandler) Activate(c echo.Context) error {
    var req validator.ActivateRequest
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    l, err := h.Auth.Activate(ctx, middleware.NIC(c), req)
    if err != nil {
        return fail(c, err)
    }
    return respond(c, http.StatusOK, "User activated successfully", l)
}
