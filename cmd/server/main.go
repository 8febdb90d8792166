package main // Entry point package

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    logrus "github.com/sirupsen/logrus"

    "github.com/iliyamo/train-ticket-reservation/internal/config"
    "github.com/iliyamo/train-ticket-reservation/internal/database"
    "github.com/iliyamo/train-ticket-reservation/internal/handler"
    "github.com/iliyamo/train-ticket-reservation/internal/logger"
    "github.com/iliyamo/train-ticket-reservation/internal/middleware"
    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/queue"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
    "github.com/iliyamo/train-ticket-reservation/internal/router"
    "github.com/iliyamo/train-ticket-reservation/internal/service"
)

func main() {
    cfg := config.Load()
    logger.Setup(cfg.LogFile, cfg.LogLevel)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    db, err := database.Open(database.Options{
        Driver:     cfg.DBDriver,
        User:       cfg.DBUser,
        Pass:       cfg.DBPass,
        Host:       cfg.DBHost,
        Port:       cfg.DBPort,
        Name:       cfg.DBName,
        SQLitePath: cfg.SQLitePath,
    })
    if err != nil {
        logrus.WithError(err).Fatal("database open failed")
    }
    defer db.Close()
    if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
        logrus.WithError(err).Fatal("schema migration failed")
    }

    authz, err := policy.New(ctx)
    if err != nil {
        logrus.WithError(err).Fatal("policy compile failed")
    }

    var events service.EventPublisher = service.NopPublisher{}
    if cfg.Events.Enabled {
        events = queue.NewPublisher(cfg.Events.URL, cfg.Events.Queue)
    }
    if cfg.Events.Consumer {
        audit := logger.New(logger.Writer(cfg.Events.LogFile))
        consumer := queue.NewConsumer(cfg.Events.URL, cfg.Events.Queue, audit)
        go func() {
            if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                logrus.WithError(err).Error("reservation consumer stopped")
            }
        }()
    }

    rdb := config.NewRedisClient(ctx)
    if rdb == nil {
        logrus.Warn("redis unavailable; rate limiting and response cache disabled")
    } else {
        defer rdb.Close()
    }

    store := repository.NewStore(db)
    auth := service.NewAuthService(store, authz, cfg.JWTSecret, cfg.SessionWindow).WithAdmins(cfg.Admins...)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(middleware.RequestLogger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.Register(e, db, router.Handlers{
        Auth:         handler.NewAuthHandler(auth, cfg.JWTSecret),
        Users:        handler.NewUserHandler(service.NewUserService(store, authz)),
        Trains:       handler.NewTrainHandler(service.NewTrainService(store, authz)),
        Reservations: handler.NewReservationHandler(service.NewReservationService(store, authz, events)),
        Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(store)),
    }, router.Middleware{
        JWT:   middleware.JWTAuth(cfg.JWTSecret, auth),
        Cache: middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    })

    addr := ":" + cfg.Port
    go func() {
        logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "driver": cfg.DBDriver}).Info("listening")
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logrus.WithError(err).Fatal("server failed")
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        logrus.WithError(err).Error("graceful shutdown failed")
    }
}
