package router // package router defines how HTTP routes are registered for the API

import (
    "database/sql"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/handler"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
    Auth         *handler.AuthHandler
    Users        *handler.UserHandler
    Trains       *handler.TrainHandler
    Reservations *handler.ReservationHandler
    Dashboard    *handler.DashboardHandler
}

// Middleware supplied by the caller.  JWT guards protected routes; Cache is
// applied only to the static district list.
type Middleware struct {
    JWT   echo.MiddlewareFunc
    Cache echo.MiddlewareFunc
}

// Register mounts every route of the API on e.
func Register(e *echo.Echo, db *sql.DB, h Handlers, mw Middleware) {
    RegisterRoutes(e, db)
    api := e.Group("/api")
    RegisterAuth(api, h.Auth, mw)
    RegisterUsers(api, h.Users, mw)
    RegisterTrains(api, h.Trains, mw)
    RegisterReservations(api, h.Reservations, mw)
    RegisterDashboard(api, h.Dashboard, mw)
}

// RegisterRoutes registers routes that need neither authentication nor the
// /api prefix.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
    e.GET("/healthz", handler.Health(db))
}

// RegisterAuth mounts /api/auth.  Register, login and token login are open;
// logout and activate need a valid session.
func RegisterAuth(api *echo.Group, a *handler.AuthHandler, mw Middleware) {
    g := api.Group("/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/token-login", a.TokenLogin)
    g.POST("/logout", a.Logout, mw.JWT)
    g.POST("/activate", a.Activate, mw.JWT)
}

// RegisterDashboard mounts the gazetteer, served through the response cache,
// and the dashboard counters, which are always read live.
func RegisterDashboard(api *echo.Group, d *handler.DashboardHandler, mw Middleware) {
    api.GET("/districts", handler.Districts, mw.Cache)
    api.GET("/dashboard", d.Counts, mw.JWT)
}
