package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
)

// UsersHandler handles user endpoints
type UsersHandler struct {
	users  *relational.UserRepository
	logger *zap.Logger
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(app *appctx.Context) *UsersHandler {
	return &UsersHandler{
		users:  app.Users(),
		logger: app.Logger().Named("users"),
	}
}

// CreateUser handles POST /api/users
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.UserInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, h.logger, err, "create user")
	}

	user, err := h.users.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, h.logger, err, "create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/users/:id
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return handleError(c, h.logger, err, "get user")
	}

	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get user")
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return handleError(c, h.logger, err, "delete user")
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return handleError(c, h.logger, err, "delete user")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers user routes under router
func (h *UsersHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.CreateUser)
	router.Get("/users/:id", h.GetUser)
	router.Delete("/users/:id", h.DeleteUser)
}
