package middleware

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

const sentryHubLocal = "sentry_hub"

// SentryConfig holds Sentry client settings
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

// InitSentry initializes the Sentry SDK. It reports whether reporting is on;
// an empty DSN leaves it off without error.
func InitSentry(config SentryConfig) (bool, error) {
	if config.DSN == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		SampleRate:       config.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	return true, nil
}

// FlushSentry flushes any buffered events to Sentry
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}

// SentryHub attaches a per-request hub tagged with the request ID
func SentryHub() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(sentryHubLocal, requestHub(c))
		return c.Next()
	}
}

// CaptureError reports err to Sentry with the request attached
func CaptureError(c *fiber.Ctx, err error) {
	hub := requestHub(c)
	hub.Scope().SetExtra("path", c.Path())
	hub.Scope().SetExtra("method", c.Method())
	hub.CaptureException(err)
}

// requestHub returns the hub stored by SentryHub or a fresh clone of the current one
func requestHub(c *fiber.Ctx) *sentry.Hub {
	if hub, ok := c.Locals(sentryHubLocal).(*sentry.Hub); ok && hub != nil {
		return hub
	}

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetTag("request_id", GetRequestID(c))
	hub.Scope().SetContext("Request", map[string]interface{}{
		"url":          c.OriginalURL(),
		"method":       c.Method(),
		"query_string": string(c.Request().URI().QueryString()),
		"remote_addr":  c.IP(),
	})
	return hub
}
