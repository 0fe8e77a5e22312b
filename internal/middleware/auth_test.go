package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/auth"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

func TestRequireJWT(t *testing.T) {
	tokens := auth.NewTokens(config.AuthConfig{Secret: "signing-key", TokenTTL: time.Hour})
	user := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	issued, err := tokens.Issue(user)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(tokens).RequireJWT(), func(c *fiber.Ctx) error {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		return c.SendString(userID.String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer " + issued.AccessToken, status: fiber.StatusOK},
		{name: "missing header", header: "", status: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + issued.AccessToken, status: fiber.StatusUnauthorized},
		{name: "tampered token", header: "Bearer " + issued.AccessToken + "x", status: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusUnauthorized {
				assert.Equal(t, apperrors.CodeUnauthorized, decodeError(t, resp).Code)
			}
		})
	}
}
