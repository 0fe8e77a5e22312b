package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/auth"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/middleware"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
)

// AuthHandler handles login and the current-user lookup
type AuthHandler struct {
	users  *relational.UserRepository
	tokens *auth.Tokens
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(app *appctx.Context, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{
		users:  app.Users(),
		tokens: tokens,
		logger: app.Logger().Named("auth"),
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, h.logger, err, "log in")
	}

	user, err := h.users.Authenticate(c.Context(), input.Email, input.Password)
	if err != nil {
		return handleError(c, h.logger, err, "log in")
	}

	result, err := h.tokens.Issue(user)
	if err != nil {
		return handleError(c, h.logger, err, "log in")
	}

	return c.JSON(result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return handleError(c, h.logger, apperrors.Unauthorized(""), "get current user")
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		// a deleted user keeps a signed token until it expires
		if apperrors.IsNotFound(err) {
			err = apperrors.Unauthorized("user no longer exists")
		}
		return handleError(c, h.logger, err, "get current user")
	}

	return c.JSON(user)
}

// RegisterRoutes registers auth routes under router
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/login", h.Login)
	router.Get("/auth/me", middleware.NewAuthMiddleware(h.tokens).RequireJWT(), h.Me)
}
