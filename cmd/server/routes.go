package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/auth"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/bootstrap"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/handler"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/middleware"
)

// routes registers the HTTP surface once bootstrap has wired the App
type routes struct {
	version       string
	sentryEnabled bool
}

func (r *routes) RegisterRoutes(router fiber.Router, app *bootstrap.App) {
	router.Use(middleware.RequestID())
	router.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(app.Logger)).Handler())
	if r.sentryEnabled {
		router.Use(middleware.SentryHub())
	}
	router.Use(middleware.Recover(app.Logger, r.sentryEnabled))
	router.Use(middleware.Metrics())

	// Health checks and metrics (no rate limit)
	handler.NewHealthHandler(app.Storage, app.Cache, r.version).RegisterRoutes(router)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if app.Config.Auth.Secret == "" {
		app.Logger.Warn("AUTH_TOKEN_SECRET is not set, access tokens will not survive a restart")
	}
	tokens := auth.NewTokens(app.Config.Auth)

	limit := middleware.DefaultRateLimitConfig()
	limit.Max = app.Config.RateLimit.Max
	limit.Window = time.Minute

	api := router.Group("/api")
	api.Use(middleware.NewRateLimitMiddleware(app.Cache.Client, app.Logger, limit).Handler())
	{
		handler.NewTicketsHandler(app.Context).RegisterRoutes(api)
		// The events repository is wired with the reader role, so
		// POST /api/tickets/:id/events always answers 403 READ_ONLY.
		handler.NewEventsHandler(app.Context).RegisterRoutes(api)
		handler.NewUsersHandler(app.Context).RegisterRoutes(api)
		handler.NewAuthHandler(app.Context, tokens).RegisterRoutes(api)
	}
}
