package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-ticket-reservation/internal/handler"
)

// RegisterUsers mounts /api/user.  Every route requires a valid session.
func RegisterUsers(api *echo.Group, u *handler.UserHandler, mw Middleware) {
    g := api.Group("/user", mw.JWT)
    g.GET("", u.List)
    g.GET("/type/:type", u.ByType)
    g.GET("/:nic", u.Get)
    g.POST("", u.Create)
    g.PUT("/:nic", u.Patch)
    g.PATCH("/:nic", u.Patch)
    g.DELETE("/:nic", u.Delete)
}

// RegisterTrains mounts /api/train.  Listing is public so guests can browse
// the timetable; changes require a session and pass the policy check in the
// service.
func RegisterTrains(api *echo.Group, t *handler.TrainHandler, mw Middleware) {
    g := api.Group("/train")
    g.GET("", t.List)
    g.GET("/owner/:nic", t.ByOwner)
    g.GET("/:id", t.Get)

    w := g.Group("", mw.JWT)
    w.POST("", t.Create)
    w.PUT("/:id", t.Update)
    w.DELETE("/:id", t.Delete)
}

// RegisterReservations mounts /api/reservation.  Every route requires a
// valid session.
func RegisterReservations(api *echo.Group, r *handler.ReservationHandler, mw Middleware) {
    g := api.Group("/reservation", mw.JWT)
    g.GET("", r.List)
    g.GET("/nic/:nic", r.ByNIC)
    g.GET("/train/:id", r.ByTrain)
    g.GET("/:id", r.Get)
    g.POST("", r.Create)
    g.PUT("/:id", r.Edit)
    g.DELETE("/:id", r.Delete)
}
