package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// ErrorResponse is the JSON body of every error written outside a handler
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteError answers the request with appErr
func WriteError(c *fiber.Ctx, appErr *apperrors.AppError) error {
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error:     utils.StatusMessage(appErr.StatusCode),
		Code:      appErr.Code,
		Message:   appErr.Message,
		RequestID: GetRequestID(c),
	})
}

// ErrorHandler answers errors no handler wrote a response for.
// Server errors are logged and, with reporting on, sent to Sentry.
func ErrorHandler(logger *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := toAppError(err)

		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("request error",
				zap.Int("status", appErr.StatusCode),
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("request_id", GetRequestID(c)),
			)
			if sentryEnabled {
				CaptureError(c, err)
			}
		}

		return WriteError(c, appErr)
	}
}

// statusOf resolves the status a returned error will be answered with
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperrors.GetStatusCode(err)
}

func toAppError(err error) *apperrors.AppError {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return apperrors.New(codeForStatus(fe.Code), fe.Message, fe.Code)
	}
	return apperrors.Internal("An unexpected error occurred").WithError(err)
}

// codeForStatus turns 404 into NOT_FOUND, 405 into METHOD_NOT_ALLOWED and so on
func codeForStatus(status int) string {
	if status >= fiber.StatusInternalServerError {
		return apperrors.CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}
