package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/auth"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

const userIDLocal = "user_id"

// AuthMiddleware guards routes with the access tokens issued at login
type AuthMiddleware struct {
	tokens *auth.Tokens
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.Tokens) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireJWT rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return WriteError(c, apperrors.Unauthorized("Authorization header required"))
		}

		userID, _, err := m.tokens.Validate(token)
		if err != nil {
			return WriteError(c, apperrors.Unauthorized("Invalid or expired token"))
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetUserID gets the user ID set by RequireJWT
func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(userIDLocal).(uuid.UUID)
	return userID, ok
}
