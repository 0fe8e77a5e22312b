package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/bootstrap"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/middleware"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
)

const (
	appVersion         = "0.1.0"
	sentryFlushTimeout = 5 * time.Second
)

func main() {
	// Logging comes up before bootstrap so its failures reach stderr.
	// A config error here resurfaces from bootstrap.Run below.
	format := "json"
	var sentryCfg config.SentryConfig
	if cfg, err := config.Load(); err == nil {
		format = cfg.Log.Format
		sentryCfg = cfg.Sentry
	}
	log := logger.Init(logger.Config{Format: format})
	defer logger.Sync()

	sentryEnabled, err := middleware.InitSentry(middleware.SentryConfig{
		DSN:         sentryCfg.DSN,
		Environment: sentryCfg.Environment,
		Release:     "mayday@" + appVersion,
		SampleRate:  1.0,
	})
	if err != nil {
		log.Error("failed to initialize Sentry", zap.Error(err))
	}
	if sentryEnabled {
		log.Info("Sentry initialized", zap.String("environment", sentryCfg.Environment))
		defer middleware.FlushSentry(sentryFlushTimeout)
	}

	server := newServer(log, sentryEnabled)

	app, err := bootstrap.Run(context.Background(),
		bootstrap.WithLogger(log),
		bootstrap.WithRouter(server),
		bootstrap.WithRegistrar(&routes{version: appVersion, sentryEnabled: sentryEnabled}),
	)
	if err != nil {
		if sentryEnabled {
			sentry.CaptureException(err)
			middleware.FlushSentry(sentryFlushTimeout)
		}
		log.Fatal("failed to bootstrap", zap.Error(err))
	}
	defer app.Close()

	go func() {
		addr := app.Config.Server.Addr()
		log.Info("starting server",
			zap.String("addr", addr),
			zap.Stringer("stage", app.Stage),
		)
		if err := server.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

func newServer(log *zap.Logger, sentryEnabled bool) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "Mayday Ticketing API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log, sentryEnabled),
	})
}
