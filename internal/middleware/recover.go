package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

const maxStackSize = 4 << 10

// Recover turns a handler panic into a 500 response and logs the stack.
// With sentryEnabled the panic is also reported before responding.
func Recover(logger *zap.Logger, sentryEnabled bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				if len(stack) > maxStackSize {
					stack = stack[:maxStackSize]
				}

				var panicErr error
				switch v := r.(type) {
				case error:
					panicErr = v
				default:
					panicErr = fmt.Errorf("%v", v)
				}

				logger.Error("panic recovered",
					zap.Error(panicErr),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.String("ip", c.IP()),
					zap.String("stack", string(stack)),
					zap.String("request_id", GetRequestID(c)),
				)

				if sentryEnabled {
					hub := requestHub(c)
					hub.Scope().SetExtra("stack_trace", string(stack))
					hub.Scope().SetLevel(sentry.LevelFatal)
					if eventID := hub.RecoverWithContext(c.Context(), r); eventID != nil {
						logger.Info("panic reported to Sentry", zap.String("event_id", string(*eventID)))
					}
					hub.Flush(2 * time.Second)
				}

				err = WriteError(c, apperrors.Internal("An unexpected error occurred"))
			}
		}()

		return c.Next()
	}
}
