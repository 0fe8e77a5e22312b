package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/middleware"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/validator"
)

// Pagination represents pagination parameters for list operations.
type Pagination struct {
	Limit  int
	Offset int
}

// DefaultPagination provides default pagination values.
var DefaultPagination = Pagination{Limit: 50, Offset: 0}

// ParsePagination extracts limit and offset query parameters.
// maxLimit caps the limit (0 for no cap).
func ParsePagination(c *fiber.Ctx, maxLimit int) Pagination {
	p := Pagination{
		Limit:  parseQueryInt(c, "limit", DefaultPagination.Limit),
		Offset: parseQueryInt(c, "offset", DefaultPagination.Offset),
	}

	if p.Limit <= 0 {
		p.Limit = DefaultPagination.Limit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

func parseQueryInt(c *fiber.Ctx, key string, defaultValue int) int {
	val := c.Query(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// parseQueryUUID returns nil when the parameter is empty or invalid
func parseQueryUUID(c *fiber.Ctx, key string) *uuid.UUID {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return nil
	}
	return &id
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string                     `json:"error"`
	Code    string                     `json:"code,omitempty"`
	Message string                     `json:"message"`
	Fields  validator.ValidationErrors `json:"fields,omitempty"`
}

func errorResponse(c *fiber.Ctx, appErr *apperrors.AppError) error {
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error:   utils.StatusMessage(appErr.StatusCode),
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// handleError writes the response for err. AppErrors keep their status,
// validation failures become 400, anything else is logged and hidden.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error, action string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return errorResponse(c, appErr)
	}

	var ve validator.ValidationErrors
	if apperrors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   utils.StatusMessage(fiber.StatusBadRequest),
			Code:    apperrors.CodeValidation,
			Message: "Validation failed",
			Fields:  ve,
		})
	}

	logger.Error("failed to "+action,
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	return errorResponse(c, apperrors.Internal("Failed to "+action))
}

// parseBody decodes and validates the request body into v
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	return validator.Validate(v)
}

// parseIDParam parses a UUID route parameter
func parseIDParam(c *fiber.Ctx, name, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("Invalid " + resource + " ID")
	}
	return id, nil
}
